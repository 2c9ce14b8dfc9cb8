package sim

// WallCollision reports whether c lies outside the playfield.
func WallCollision(g Grid, c Cell) bool {
	return !g.Contains(c)
}

// SelfCollision reports whether moving the head onto c hits the body.
// When not eating the tail vacates this tick, so its current cell is exempt;
// when eating the tail stays and remains an obstacle.
func SelfCollision(c Cell, snake []Cell, eating bool) bool {
	end := len(snake)
	if !eating {
		end--
	}
	for i := 0; i < end; i++ {
		if snake[i] == c {
			return true
		}
	}
	return false
}
