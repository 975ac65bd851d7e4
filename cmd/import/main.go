// Command import loads a PokeAPI-style JSON dataset into the catalog
// collection. One-shot tool; run it once against a fresh database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/config"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/pokedex"
)

// rawPokemon matches the dataset layout, which differs from the catalog
// document shape ("base" stat block with display-style keys).
type rawPokemon struct {
	ID   int          `json:"id"`
	Name pokedex.Name `json:"name"`
	Type []string     `json:"type"`
	Base struct {
		HP             int `json:"HP"`
		Attack         int `json:"Attack"`
		Defense        int `json:"Defense"`
		SpecialAttack  int `json:"Sp. Attack"`
		SpecialDefense int `json:"Sp. Defense"`
		Speed          int `json:"Speed"`
	} `json:"base"`
	Image string `json:"image"`
}

func transform(raw rawPokemon) (*pokedex.Pokemon, error) {
	types, err := pokedex.NormalizeTypes(raw.Type)
	if err != nil {
		return nil, err
	}
	return &pokedex.Pokemon{
		ID:   raw.ID,
		Name: raw.Name,
		Type: types,
		Stats: pokedex.Stats{
			HP:             raw.Base.HP,
			Attack:         raw.Base.Attack,
			Defense:        raw.Base.Defense,
			SpecialAttack:  raw.Base.SpecialAttack,
			SpecialDefense: raw.Base.SpecialDefense,
			Speed:          raw.Base.Speed,
		},
		Image:      raw.Image,
		Evolutions: []int{}, // the dataset carries no evolution data
	}, nil
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	dataPath := flag.String("data", "data/pokemons.json", "path to the pokemon JSON dataset")
	drop := flag.Bool("drop", false, "delete existing catalog documents before importing")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	data, err := os.ReadFile(*dataPath)
	if err != nil {
		log.Fatalf("reading dataset: %v", err)
	}

	var raws []rawPokemon
	if err := json.Unmarshal(data, &raws); err != nil {
		log.Fatalf("parsing dataset: %v", err)
	}

	docs := make([]interface{}, 0, len(raws))
	for _, raw := range raws {
		p, err := transform(raw)
		if err != nil {
			log.Fatalf("pokemon #%d: %v", raw.ID, err)
		}
		docs = append(docs, p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.GetURI()))
	if err != nil {
		log.Fatalf("mongodb connection failed: %v", err)
	}
	defer client.Disconnect(ctx)

	collection := client.Database(cfg.Mongo.GetDatabase()).Collection(cfg.Mongo.GetPokemonsCollection())

	if *drop {
		if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("clearing catalog: %v", err)
		}
		log.Println("existing catalog documents removed")
	}

	res, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("importing pokemons: %v", err)
	}

	log.Printf("%d pokemons imported successfully", len(res.InsertedIDs))
}
