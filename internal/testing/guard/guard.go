// Package guard forces test mode when imported, so test binaries never start
// the runtime side effects of main.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("MMS_TEST_MODE") == "" {
			_ = os.Setenv("MMS_TEST_MODE", "1")
		}
	})
}
