// Command seed loads a starter question bank so a fresh install has
// questions in every difficulty band.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/preplane/backend/internal/domain/question"
	"github.com/preplane/backend/internal/store"
)

type seedQuestion struct {
	text       string
	options    question.Options
	correct    string
	difficulty question.Difficulty
	tags       []string
}

func main() {
	dbPath := flag.String("db", "preplane.db", "path to the SQLite database")
	flag.Parse()

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	inserted := 0
	for _, sq := range seedQuestions() {
		q, err := question.New(sq.text, sq.options, sq.correct, sq.difficulty, sq.tags...)
		if err != nil {
			log.Fatalf("invalid seed question %q: %v", sq.text, err)
		}
		if err := db.SaveQuestion(ctx, q); err != nil {
			log.Fatalf("save question %q: %v", sq.text, err)
		}
		inserted++
	}

	fmt.Fprintf(os.Stdout, "seeded %d questions into %s\n", inserted, *dbPath)
}

func seedQuestions() []seedQuestion {
	return []seedQuestion{
		// Very easy
		{"What is 2 + 2?", question.Options{A: "3", B: "4", C: "5", D: "6"}, "B", question.VeryEasy, []string{"math"}},
		{"What is the capital of France?", question.Options{A: "Berlin", B: "Madrid", C: "Paris", D: "Rome"}, "C", question.VeryEasy, []string{"geography"}},
		{"How many days are in a week?", question.Options{A: "5", B: "6", C: "7", D: "8"}, "C", question.VeryEasy, []string{"general"}},
		{"Which planet do we live on?", question.Options{A: "Mars", B: "Earth", C: "Venus", D: "Jupiter"}, "B", question.VeryEasy, []string{"science"}},
		{"What color is a ripe banana?", question.Options{A: "Red", B: "Blue", C: "Green", D: "Yellow"}, "D", question.VeryEasy, []string{"general"}},
		{"How many letters are in the English alphabet?", question.Options{A: "24", B: "25", C: "26", D: "27"}, "C", question.VeryEasy, []string{"general"}},

		// Easy
		{"What is 15 × 4?", question.Options{A: "45", B: "50", C: "60", D: "64"}, "C", question.Easy, []string{"math"}},
		{"Which gas do plants absorb from the atmosphere?", question.Options{A: "Oxygen", B: "Carbon dioxide", C: "Nitrogen", D: "Hydrogen"}, "B", question.Easy, []string{"science"}},
		{"Who painted the Mona Lisa?", question.Options{A: "Van Gogh", B: "Picasso", C: "Da Vinci", D: "Monet"}, "C", question.Easy, []string{"art"}},
		{"What is the largest ocean on Earth?", question.Options{A: "Atlantic", B: "Indian", C: "Arctic", D: "Pacific"}, "D", question.Easy, []string{"geography"}},
		{"What is the chemical symbol for water?", question.Options{A: "H2O", B: "CO2", C: "O2", D: "NaCl"}, "A", question.Easy, []string{"science"}},
		{"In which year did World War II end?", question.Options{A: "1943", B: "1944", C: "1945", D: "1946"}, "C", question.Easy, []string{"history"}},

		// Moderate
		{"What is the square root of 361?", question.Options{A: "17", B: "18", C: "19", D: "21"}, "C", question.Moderate, []string{"math"}},
		{"Which mountain range separates Europe from Asia?", question.Options{A: "Alps", B: "Himalayas", C: "Urals", D: "Andes"}, "C", question.Moderate, []string{"geography"}},
		{"What is the powerhouse of the cell?", question.Options{A: "Nucleus", B: "Mitochondria", C: "Ribosome", D: "Golgi apparatus"}, "B", question.Moderate, []string{"science"}},
		{"Who wrote 'One Hundred Years of Solitude'?", question.Options{A: "Borges", B: "García Márquez", C: "Neruda", D: "Allende"}, "B", question.Moderate, []string{"literature"}},
		{"What is 15% of 240?", question.Options{A: "32", B: "34", C: "36", D: "38"}, "C", question.Moderate, []string{"math"}},
		{"In which year did the Berlin Wall fall?", question.Options{A: "1987", B: "1989", C: "1991", D: "1993"}, "B", question.Moderate, []string{"history"}},

		// Difficult
		{"What is the derivative of x·ln(x)?", question.Options{A: "ln(x)", B: "1/x", C: "ln(x) + 1", D: "x·ln(x) − 1"}, "C", question.Difficult, []string{"math"}},
		{"Which particle mediates the electromagnetic force?", question.Options{A: "Gluon", B: "Photon", C: "W boson", D: "Graviton"}, "B", question.Difficult, []string{"science"}},
		{"What is the time complexity of binary search?", question.Options{A: "O(n)", B: "O(n log n)", C: "O(log n)", D: "O(1)"}, "C", question.Difficult, []string{"cs"}},
		{"Who proved Fermat's Last Theorem?", question.Options{A: "Euler", B: "Gauss", C: "Wiles", D: "Perelman"}, "C", question.Difficult, []string{"math"}},
		{"Which treaty ended the Thirty Years' War?", question.Options{A: "Versailles", B: "Westphalia", C: "Utrecht", D: "Tordesillas"}, "B", question.Difficult, []string{"history"}},
		{"What is the pH of a 0.01 M HCl solution?", question.Options{A: "1", B: "2", C: "3", D: "4"}, "B", question.Difficult, []string{"science"}},
	}
}
