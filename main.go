package main

import "github/chapool/go-mock-wallet/cmd"

func main() {
	cmd.Execute()
}
