package main

import (
	"github.com/c-elegans/go-equiv/pkg/cmd"
)

func main() {
	cmd.Execute()
}
