package main

import (
	"fmt"
	"os"

	"github.com/shaharia-lab/designpatterns/cmd"
	"github.com/shaharia-lab/designpatterns/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cmd.Execute(cfg)
}
