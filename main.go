package main

import "github.com/AdityaD28/portfolio/cmd"

func main() {
	cmd.Execute()
}
