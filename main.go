package main

import "github.com/notargets/gotraffic/cmd"

func main() {
	cmd.Execute()
}
