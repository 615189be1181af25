package main

import "github.com/nutriplan/nutriplan-cli/cmd/nutriplan"

func main() {
	nutriplan.Execute()
}
