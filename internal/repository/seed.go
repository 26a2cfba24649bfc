package repository

import model "auction-engine/internal/models"

// SampleCatalog returns the demo league loaded when no catalog exists yet
func SampleCatalog() ([]model.Team, []model.Player) {
	teams := []model.Team{
		{TeamID: "team-chennai", Name: "Chennai Chargers", Budget: 100000},
		{TeamID: "team-mumbai", Name: "Mumbai Mariners", Budget: 100000},
		{TeamID: "team-delhi", Name: "Delhi Dynamos", Budget: 100000},
		{TeamID: "team-kolkata", Name: "Kolkata Knights", Budget: 100000},
	}
	players := []model.Player{
		{PlayerID: "player-1", Name: "R. Sharma", Role: "batter", Category: "marquee", BasePrice: 5000},
		{PlayerID: "player-2", Name: "J. Bumrah", Role: "bowler", Category: "marquee", BasePrice: 5000},
		{PlayerID: "player-3", Name: "R. Jadeja", Role: "all-rounder", Category: "capped", BasePrice: 3000},
		{PlayerID: "player-4", Name: "R. Pant", Role: "wicketkeeper", Category: "capped", BasePrice: 3000},
		{PlayerID: "player-5", Name: "Y. Jaiswal", Role: "batter", Category: "capped", BasePrice: 2000},
		{PlayerID: "player-6", Name: "K. Yadav", Role: "bowler", Category: "capped", BasePrice: 2000},
		{PlayerID: "player-7", Name: "A. Verma", Role: "batter", Category: "uncapped", BasePrice: 500},
		{PlayerID: "player-8", Name: "S. Khan", Role: "bowler", Category: "uncapped", BasePrice: 500},
	}
	for i := range players {
		players[i].LotNumber = i + 1
		players[i].Status = model.StatusQueued
	}
	return teams, players
}
