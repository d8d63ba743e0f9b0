package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/iamasit07/hex/backend/internal/cli"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := hex(); err != nil {
		logrus.Fatal(err)
	}
}

func hex() error {
	root := cli.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
