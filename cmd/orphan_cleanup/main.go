package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"thenest/internal/config"
	"thenest/internal/database"
	"thenest/internal/repository"

	"gorm.io/gorm"
)

func main() {
	prune := flag.Bool("prune", false, "delete the orphaned rows instead of only reporting them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewOrphanRepository(db)
	var total int64
	for _, model := range repository.OrphanTables {
		table := tableName(db, model)
		n, err := repo.Count(ctx, model)
		if err != nil {
			log.Fatalf("count %s failed: %v", table, err)
		}
		if n == 0 {
			continue
		}
		total += n
		if !*prune {
			log.Printf("orphans table=%s rows=%d", table, n)
			continue
		}
		deleted, err := repo.Prune(ctx, model)
		if err != nil {
			log.Fatalf("prune %s failed: %v", table, err)
		}
		log.Printf("orphans pruned table=%s rows=%d", table, deleted)
	}
	log.Printf("orphan cleanup completed: rows=%d prune=%t", total, *prune)
}

func tableName(db *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
