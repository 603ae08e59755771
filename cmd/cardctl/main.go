package main

import (
	"fmt"
	"os"

	"github.com/Jubris-Knifes/cardbase/cmd/cardctl/cli"
	"github.com/Jubris-Knifes/cardbase/config"
)

func main() {
	if err := cli.NewRootCmd(config.Get().Client).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
