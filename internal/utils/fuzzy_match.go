package utils

import (
	"strings"
)

// featureAliases maps a canonical amenity tag to the listing-feature
// spellings that satisfy it. Listing data is free text written by
// different agents, so "garagem" must also accept "vaga coberta" and
// "estacionamento".
var featureAliases = map[string][]string{
	"garagem":        {"garagem", "vaga", "estacionamento"},
	"piscina":        {"piscina"},
	"academia":       {"academia", "ginasio", "fitness"},
	"elevador":       {"elevador"},
	"portaria":       {"portaria", "porteiro"},
	"portaria_24h":   {"portaria 24h", "portaria 24 horas"},
	"seguranca":      {"seguranca", "seguranca 24h", "vigilancia"},
	"churrasqueira":  {"churrasqueira", "churrasco"},
	"area_lazer":     {"area de lazer", "lazer completo", "lazer"},
	"playground":     {"playground", "pracinha"},
	"pet_friendly":   {"pet friendly", "aceita pet", "aceita animais", "pet"},
	"sacada":         {"sacada", "varanda"},
	"terraco":        {"terraco"},
	"lavanderia":     {"lavanderia"},
	"quintal":        {"quintal", "patio"},
	"jardim":         {"jardim", "area verde"},
	"sauna":          {"sauna"},
	"salao_festas":   {"salao de festas", "salao"},
	"quadra":         {"quadra", "quadra esportiva"},
	"espaco_gourmet": {"espaco gourmet", "area gourmet"},
	"transporte":     {"metro", "onibus", "transporte", "estacao"},
	"mobiliado":      {"mobiliado"},
	"vista":          {"vista", "vista panoramica"},
	"home_office":    {"home office", "escritorio"},
}

// FuzzyMatchFeature reports whether a listing feature string satisfies a
// canonical amenity tag, comparing accent-folded substrings.
func FuzzyMatchFeature(tag, feature string) bool {
	tagFolded := Fold(strings.TrimSpace(tag))
	featureFolded := Fold(strings.TrimSpace(feature))

	if tagFolded == "" || featureFolded == "" {
		return false
	}

	// Exact or substring match on the tag itself
	if strings.Contains(featureFolded, strings.ReplaceAll(tagFolded, "_", " ")) {
		return true
	}

	// Alias match
	for _, alias := range featureAliases[tagFolded] {
		if strings.Contains(featureFolded, alias) {
			return true
		}
	}

	return false
}

// ListingHasFeature reports whether any feature in the listing's feature
// set satisfies the canonical amenity tag.
func ListingHasFeature(tag string, features []string) bool {
	for _, f := range features {
		if FuzzyMatchFeature(tag, f) {
			return true
		}
	}
	return false
}

// CountMatchedFeatures returns how many of the requested canonical tags
// are satisfied by the listing's feature set.
func CountMatchedFeatures(tags []string, features []string) int {
	n := 0
	for _, tag := range tags {
		if ListingHasFeature(tag, features) {
			n++
		}
	}
	return n
}
