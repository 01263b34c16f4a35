package golurk

import (
	"fmt"
	"strconv"
	"strings"
)

// add appends one protocol line built from its parts: |part1|part2|...
func (b *Battle) add(parts ...string) {
	b.log = append(b.log, "|"+strings.Join(parts, "|"))
}

// addf is add for lines with a single formatted part
func (b *Battle) addf(format string, args ...any) {
	b.log = append(b.log, fmt.Sprintf(format, args...))
}

// Log returns every output line written so far.
func (b *Battle) Log() []string {
	return b.log
}

// InputLog returns the canonical command lines that reproduce this battle.
func (b *Battle) InputLog() []string {
	return b.inputLog
}

// ident is "p1a: Name" for active Pokemon and "p1: Name" otherwise.
func (b *Battle) ident(ref PokemonRef) string {
	p := b.Pokemon(ref)
	side := b.Sides[ref.Side]
	if p.IsActive {
		return fmt.Sprintf("%s%c: %s", side.ID, 'a'+rune(p.Position), p.Name)
	}
	return fmt.Sprintf("%s: %s", side.ID, p.Name)
}

// slot is the position id of an active Pokemon: "p2a"
func (b *Battle) slot(ref PokemonRef) string {
	return fmt.Sprintf("%s%c", b.Sides[ref.Side].ID, 'a'+rune(b.Pokemon(ref).Position))
}

func (b *Battle) sideIdent(side int) string {
	s := b.Sides[side]
	return s.ID + ": " + s.Name
}

// details is the species line shown on switch: "Pikachu, L50, M"
func details(p *Pokemon) string {
	parts := []string{p.Species.Name}
	if p.Level != MAX_LEVEL {
		parts = append(parts, "L"+strconv.Itoa(p.Level))
	}
	if p.Gender == "M" || p.Gender == "F" {
		parts = append(parts, p.Gender)
	}
	if p.Terastallized != "" {
		parts = append(parts, "tera:"+p.Terastallized)
	}
	return strings.Join(parts, ", ")
}

// health is "cur/max status" or "0 fnt"
func health(p *Pokemon) string {
	if p.Hp <= 0 {
		return "0 fnt"
	}
	hp := fmt.Sprintf("%d/%d", p.Hp, p.MaxHp)
	if p.Status != "" {
		hp += " " + string(p.Status)
	}
	return hp
}

func from(effect *Effect) string {
	return "[from] " + effect.FullName()
}

func (b *Battle) of(ref PokemonRef) string {
	return "[of] " + b.ident(ref)
}
