package cmd

import (
	"fmt"

	"github.com/go-imsto/imsizer/config"
)

var cmdVersion = &Command{
	Name:  "version",
	Short: "print version",
	Long: `
print the imsizer version
`,
}

func init() {
	cmdVersion.Run = func(args []string) bool {
		fmt.Println(config.Version)
		return true
	}
}
