/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/lafayette53/apiserver/cmd"

func main() {
	cmd.Execute()
}
