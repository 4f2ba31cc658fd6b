// Command hash-code prints the bcrypt hash of an unlock code for use in
// UNLOCK_CODE_HASHES, so the plain code never has to sit in the environment.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/playmatatu/golfcard/internal/auth"
)

func main() {
	code := strings.Join(os.Args[1:], " ")
	if code == "" {
		log.Println("Reading code from stdin...")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("Failed to read code: %v", err)
		}
		code = line
	}

	if auth.NormalizeCode(code) == "" {
		log.Fatalf("Code is empty")
	}

	hash, err := auth.HashCode(code)
	if err != nil {
		log.Fatalf("Failed to hash code: %v", err)
	}

	log.Printf("Normalised code: %s", auth.NormalizeCode(code))
	fmt.Println(hash)
}
