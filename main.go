package main

import "github.com/notargets/subdomain/cmd"

func main() {
	cmd.Execute()
}
