package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/implicit/pkg/console"
	"github.com/chazu/implicit/pkg/selftest"
)

func main() {
	var (
		runSelftest = flag.Bool("selftest", false, "run the built-in geometry checks and exit")
		scriptPath  = flag.String("f", "", "evaluate a script file instead of starting the prompt")
	)
	flag.Parse()

	if *runSelftest {
		os.Exit(runChecks())
	}

	c := console.New(os.Stdout)
	if *scriptPath != "" {
		source, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read %s: %v", *scriptPath, err)
		}
		c.Banner()
		ok := c.Eval(string(source))
		c.Footer()
		if !ok {
			os.Exit(1)
		}
		return
	}

	c.Repl()
}

func runChecks() int {
	r := selftest.Run()
	for _, name := range r.Failures {
		fmt.Printf("FAIL %s\n", name)
	}
	fmt.Printf("%d passed, %d failed\n", r.Pass, r.Fail)
	if r.Failed() {
		return 1
	}
	return 0
}
