package component

// Sprite is what RenderSystem draws for an entity. Higher Z draws later.
type Sprite struct {
	Glyph rune
	Z     int
}
