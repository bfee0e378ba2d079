package main

import "github.com/devicelab-dev/otpkit/pkg/cli"

func main() {
	cli.Execute()
}
