package main

import "github.com/sujink1999/vanta-society-sub000/cmd/vanta/root"

func main() {
	root.Execute()
}
