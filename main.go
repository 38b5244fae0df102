package main

import "github.com/ValentinKolb/jDB/cmd"

func main() {
	cmd.Execute()
}
