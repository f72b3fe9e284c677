// Command gost2-gcm encrypts and decrypts files with GOST2-128 in GCM mode.
//
// Usage:
//
//	gost2-gcm [flags] c|d <file>
package main

import (
	"os"

	"github.com/idelchi/gost2/internal/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial build"

func main() {
	os.Exit(commands.Execute("gcm", version))
}
