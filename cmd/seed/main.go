package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/homechores/chorelog/config"
	"github.com/homechores/chorelog/pkg/helpers"
)

type seedUser struct {
	Name     string
	Username string
	Email    string
	Password string
}

var usersData = []seedUser{
	{Name: "Rodrigo Martins", Username: "admin", Email: "contato@rodrigo.inf.br", Password: "a1b2c3d4"},
	{Name: "Geissiane França Soares", Username: "geissiane", Email: "contato@geissiane.com.br", Password: "a1b2c3d4"},
	{Name: "Arthur Soares Martins", Username: "arthur", Email: "arthur@rodrigo.inf.br", Password: "a1b2c3d4"},
	{Name: "Isabella Soares Martins", Username: "isabella", Email: "isabella@rodrigo.inf.br", Password: "a1b2c3d4"},
	{Name: "Luis C. Gabryel Martins", Username: "gabryel", Email: "gabryel@rodrigo.inf.br", Password: "a1b2c3d4"},
}

func main() {
	destroy := flag.Bool("destroy", false, "delete all data instead of seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if *destroy {
		destroyData(db)
		return
	}
	importData(db)
}

func wipe(db *sql.DB) {
	// task_executions first, it references users
	for _, table := range []string{"task_executions", "tasks", "users"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
}

func destroyData(db *sql.DB) {
	wipe(db)
	fmt.Println("all data deleted")
}

func importData(db *sql.DB) {
	// Clear existing data so reruns stay deterministic
	wipe(db)

	ids := make(map[string]string, len(usersData))
	for _, u := range usersData {
		hash, err := helpers.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		var id string
		err = db.QueryRow(`
			INSERT INTO users (name, username, email, password_hash)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, u.Name, u.Username, u.Email, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Username, err)
		}
		ids[u.Username] = id
		fmt.Printf("seeded user: id=%s username=%s email=%s\n", id, u.Username, u.Email)
	}

	admin := ids["admin"]
	isabella := ids["isabella"]

	tasks := []struct {
		Name       string
		Frequency  string
		Difficulty string
	}{
		{"Limpar banheiro", "semanal", "dificil"},
		{"Lavar louça", "diaria", "facil"},
		{"Tirar o lixo", "diaria", "facil"},
	}
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		var id string
		err := db.QueryRow(`
			INSERT INTO tasks (name, frequency, difficulty, status, created_by)
			VALUES ($1, $2, $3, 'pendente', $4)
			RETURNING id
		`, t.Name, t.Frequency, t.Difficulty, admin).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", t.Name, err)
		}
		taskIDs = append(taskIDs, id)
		fmt.Printf("seeded task: id=%s name=%q\n", id, t.Name)
	}

	if _, err := db.Exec(`
		INSERT INTO task_executions (task_id, executed_by, note, rating, completion_date)
		VALUES ($1, $2, $3, $4, now())
	`, taskIDs[0], isabella, "Banheiro limpo e brilhando!", 5); err != nil {
		log.Fatalf("failed to seed execution: %v", err)
	}
	fmt.Println("seeded sample execution history")

	fmt.Println("data imported successfully")
}
