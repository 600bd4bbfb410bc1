package clue

import "github.com/mcoot/codenames/internal/model"

func testView(team model.Team) model.BoardView {
	return model.BoardView{
		GameID: "game-1",
		Team:   team,
		Cells: []model.Cell{
			{Word: "WHALE", Team: model.TeamRed},
			{Word: "SHARK", Team: model.TeamRed},
			{Word: "OCTOPUS", Team: model.TeamRed},
			{Word: "PIANO", Team: model.TeamBlue},
			{Word: "DRUM", Team: model.TeamBlue},
			{Word: "TREE", Team: model.TeamNeutral},
			{Word: "SWORD", Team: model.TeamAssassin},
		},
	}
}

func reveal(view model.BoardView, words ...string) model.BoardView {
	for i, c := range view.Cells {
		for _, w := range words {
			if c.Word == w {
				view.Cells[i].Revealed = true
			}
		}
	}
	return view
}
