// Command golf opens the card in a desktop window. Vouchers are kept in
// memory for the life of the window.
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/playmatatu/golfcard/internal/auth"
	"github.com/playmatatu/golfcard/internal/card"
	"github.com/playmatatu/golfcard/internal/config"
	"github.com/playmatatu/golfcard/internal/golf"
	"github.com/playmatatu/golfcard/internal/screen"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	content, err := card.Load(cfg.CardContentPath)
	if err != nil {
		log.Fatalf("Failed to load card content: %v", err)
	}

	codes, err := auth.NewCodeChecker(cfg.UnlockCodes, cfg.UnlockCodeHashes, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to prepare unlock codes: %v", err)
	}

	features := golf.AllFeatures()
	features.Windmill = cfg.Windmill
	features.Props = cfg.Props

	app, err := screen.NewApp(card.NewService(content, card.NewMemoryStore()), codes, golf.WithFeatures(features))
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	ebiten.SetWindowSize(900, 640)
	ebiten.SetWindowTitle("For " + content.HerName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("[GOLF] Opening card for %s", content.HerName)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
