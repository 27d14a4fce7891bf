// mobconv converts a legacy entity-registry CSV dump to mob_list.yaml.
//
// Usage:
//
//	go run ./cmd/mobconv <registry.csv> <output.yaml>
//
// Expected CSV columns: key,name,category,hp,hostile,tameable
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/mobdex/server/internal/data"
	"gopkg.in/yaml.v3"
)

type mobListYAML struct {
	Mobs []data.MobTemplate `yaml:"mobs"`
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: mobconv <registry.csv> <output.yaml>")
		os.Exit(1)
	}

	inFile, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer inFile.Close()

	r := csv.NewReader(inFile)
	r.FieldsPerRecord = 6
	rows, err := r.ReadAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var mobs []data.MobTemplate
	for i, row := range rows {
		if i == 0 && row[0] == "key" {
			continue // header row
		}
		hp, err := strconv.Atoi(row[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "row %d: bad hp %q\n", i+1, row[3])
			os.Exit(1)
		}
		category := row[2]
		switch category {
		case data.CategoryCreature, data.CategoryProjectile, data.CategoryMisc:
		default:
			fmt.Fprintf(os.Stderr, "row %d: unknown category %q\n", i+1, category)
			os.Exit(1)
		}
		mobs = append(mobs, data.MobTemplate{
			Key:      row[0],
			Name:     row[1],
			Category: category,
			HP:       int32(hp),
			Hostile:  row[4] == "true" || row[4] == "1",
			Tameable: row[5] == "true" || row[5] == "1",
		})
	}

	sort.Slice(mobs, func(i, j int) bool { return mobs[i].Key < mobs[j].Key })

	out, err := yaml.Marshal(mobListYAML{Mobs: mobs})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	header := fmt.Sprintf("# Mob list — auto-generated from %s (%d entries)\n", os.Args[1], len(mobs))
	if err := os.WriteFile(os.Args[2], append([]byte(header), out...), 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d mob entries to %s\n", len(mobs), os.Args[2])
}
