package maze

// ClassicLayout is the 28x31 arcade maze.
//
//	#  wall
//	.  pellet
//	o  power pellet
//	   path (no pellet)
//	-  ghost door
//	_  empty (ghost house and the unreachable side pockets)
var ClassicLayout = []string{
	"############################",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#o####.#####.##.#####.####o#",
	"#.####.#####.##.#####.####.#",
	"#..........................#",
	"#.####.##.########.##.####.#",
	"#.####.##.########.##.####.#",
	"#......##....##....##......#",
	"######.##### ## #####.######",
	"_____#.##### ## #####.#_____",
	"_____#.##          ##.#_____",
	"_____#.## ###--### ##.#_____",
	"######.## #______# ##.######",
	"      .   #______#   .      ",
	"######.## #______# ##.######",
	"_____#.## ######## ##.#_____",
	"_____#.##          ##.#_____",
	"_____#.## ######## ##.#_____",
	"######.## ######## ##.######",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#.####.#####.##.#####.####.#",
	"#o..##.......  .......##..o#",
	"###.##.##.########.##.##.###",
	"###.##.##.########.##.##.###",
	"#......##....##....##......#",
	"#.##########.##.##########.#",
	"#.##########.##.##########.#",
	"#..........................#",
	"############################",
}
