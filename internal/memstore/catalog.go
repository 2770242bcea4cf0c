package memstore

import (
	"time"

	"github.com/moviewatch/backend/internal/models"
)

// DevCatalog returns the movies loaded by seeds/dev_seed.sql, so the memory
// store can serve the same catalog as a freshly seeded database.
func DevCatalog() []models.Movie {
	return []models.Movie{
		{
			ID:             "m1",
			Name:           "The Long Take",
			ReleaseDate:    time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC),
			Director:       "Ana Ribeiro",
			Description:    "A single-shot heist told in real time.",
			VideoFilePath:  "/videos/the-long-take.mp4",
			BannerFilePath: "/banners/the-long-take.jpg",
		},
		{
			ID:             "m2",
			Name:           "Paper Satellites",
			ReleaseDate:    time.Date(2021, 9, 2, 0, 0, 0, 0, time.UTC),
			Director:       "Jonas Weber",
			Description:    "Two kids build a radio telescope out of scrap.",
			VideoFilePath:  "/videos/paper-satellites.mp4",
			BannerFilePath: "/banners/paper-satellites.jpg",
		},
		{
			ID:             "m3",
			Name:           "Low Tide",
			ReleaseDate:    time.Date(2016, 6, 21, 0, 0, 0, 0, time.UTC),
			Director:       "Mei Nakamura",
			Description:    "A fishing village waits out a storm.",
			VideoFilePath:  "/videos/low-tide.mp4",
			BannerFilePath: "/banners/low-tide.jpg",
		},
	}
}

// LoadCatalog seeds every movie in movies.
func (s *Store) LoadCatalog(movies []models.Movie) {
	for _, movie := range movies {
		s.PutMovie(movie)
	}
}
