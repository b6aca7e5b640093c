// staff-token emite um JWT para a API de consulta da equipe.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BruksfildServices01/barbershop-bot/internal/config"
	"github.com/BruksfildServices01/barbershop-bot/internal/middleware"
)

func main() {
	sub := flag.String("sub", "", "identificador do funcionário")
	role := flag.String("role", "staff", "papel: staff ou admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "validade do token")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "usage: staff-token -sub <id> [-role staff|admin] [-ttl 24h]")
		os.Exit(2)
	}

	cfg := config.Load()

	token, err := middleware.IssueToken(cfg.JWTSecret, *sub, *role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
}
