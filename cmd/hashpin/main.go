// Command hashpin prints the bcrypt hash of an attendant PIN read from
// stdin, for use as ATTENDANT_PIN_HASH.  The cost defaults to BCRYPT_COST.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/flight-seat-reservation/internal/config"
	"github.com/iliyamo/flight-seat-reservation/internal/utils"
)

func main() {
	defaultCost := bcrypt.DefaultCost
	if cfg, err := config.Load(); err == nil {
		defaultCost = cfg.SignOn.BcryptCost
	}
	cost := flag.Int("cost", defaultCost, "bcrypt cost (4-31)")
	flag.Parse()

	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if strings.TrimSpace(line) == "" {
		fmt.Fprintln(os.Stderr, "hashpin: no PIN on stdin")
		os.Exit(1)
	}
	hash, err := utils.HashPIN(line, *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpin:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
