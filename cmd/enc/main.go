package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/ethos/internal/vault"
)

// Utilidad de desarrollo: sella o abre un payload con la clave maestra del
// vault, usando la derivación por sujeto del servicio.
func main() {
	_ = godotenv.Load(".env")

	var (
		subject = flag.String("subject", "", "subject ID para derivar la clave")
		open    = flag.Bool("open", false, "abrir (descifrar) en vez de sellar")
	)
	flag.Parse()

	if *subject == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: enc -subject <id> [-open] <payload>")
		os.Exit(2)
	}

	payload := flag.Arg(0)
	if *open {
		pt, err := vault.Open(*subject, payload)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		fmt.Println(pt)
		return
	}

	sealed, err := vault.Seal(*subject, payload)
	if err != nil {
		log.Fatalf("seal: %v", err)
	}
	fmt.Println(sealed)
}
