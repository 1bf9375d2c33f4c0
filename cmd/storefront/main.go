package main

import "github.com/storebase/storefront/internal/cmd"

func main() {
	cmd.Execute()
}
