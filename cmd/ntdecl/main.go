package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
