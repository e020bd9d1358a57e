package buddy

import (
	"fmt"
	"os"
)

// Compile-time switch for verbose allocator tracing.
const debugBuddy = false

// Runtime trace flag, controlled by the BUDDY_LOG_ALLOC env var.
var logAlloc = os.Getenv("BUDDY_LOG_ALLOC") != ""

func debugLogf(format string, args ...any) {
	if debugBuddy || logAlloc {
		fmt.Fprintf(os.Stderr, "[buddy] "+format+"\n", args...)
	}
}
