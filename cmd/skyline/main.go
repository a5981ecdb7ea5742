package main

import (
	"runtime"
)

// version é sobrescrito no build com -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	// raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	Execute()
}
