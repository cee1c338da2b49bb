package main

import "github.com/xvander/hostpulse/cmd"

func main() {
	cmd.Execute()
}
