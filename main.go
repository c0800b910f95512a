package main

import (
	"github.com/go-imsto/imsizer/cmd"
)

func main() {
	cmd.Main()
}
