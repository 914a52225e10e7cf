package main

import (
	"github.com/hashdos/diffcrypt/cmd"
)

func main() {
	// Commands, flags and their viper bindings live in the cmd package. For example,
	// $ ./diffcrypt search 50 --test
	// runs RunSearch in cmd/search.go.
	cmd.Execute()
}
