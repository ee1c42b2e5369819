package main

import "github.com/dbsmedya/gotreasury/cmd/gotreasury/cmd"

func main() {
	cmd.Execute()
}
