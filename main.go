// gitreports reports per-author contributions of a Git repository.
package main

import (
	"github.com/huangsam/gitreports/cmd"
	"github.com/huangsam/gitreports/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("gitreports", err)
	}
}
