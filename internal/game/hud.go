package game

import "fmt"

// hud mirrors the score and lives counters into two text nodes.
// Text is only rewritten when the value it shows changes.
type hud struct {
	score, lives Handle

	shownScore, shownLives int
	shownOver              bool
	synced                 bool
}

func newHUD(scene Scene) hud {
	return hud{
		score: scene.Spawn(Shape{Kind: KindText, Anchor: AnchorTopLeft}),
		lives: scene.Spawn(Shape{Kind: KindText, Anchor: AnchorTopRight}),
	}
}

// ScoreText formats the score label.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// LivesText formats the lives label.
func LivesText(lives int) string {
	return fmt.Sprintf("Lives: %d", lives)
}

// GameOverText replaces the lives label once the game has ended.
const GameOverText = "Game Over"

func (h *hud) update(scene Scene, score, lives int, over bool) {
	if !h.synced || score != h.shownScore {
		scene.SetText(h.score, ScoreText(score))
		h.shownScore = score
	}
	if !h.synced || lives != h.shownLives || over != h.shownOver {
		if over {
			scene.SetText(h.lives, GameOverText)
		} else {
			scene.SetText(h.lives, LivesText(lives))
		}
		h.shownLives = lives
		h.shownOver = over
	}
	h.synced = true
}
