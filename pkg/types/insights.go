// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HotTake is one song where a rating lands far from the crowd average.
type HotTake struct {
	SongID    string  `json:"song_id" yaml:"song_id"`
	TrackName string  `json:"track_name" yaml:"track_name"`
	Rating    float64 `json:"rating" yaml:"rating"`
	CrowdAvg  float64 `json:"crowd_avg" yaml:"crowd_avg"`
	Delta     float64 `json:"delta" yaml:"delta"`
}

// AlignedHotTake is a song where the user and their taste twin both
// disagree with the crowd in the same direction.
type AlignedHotTake struct {
	SongID     string  `json:"song_id" yaml:"song_id"`
	TrackName  string  `json:"track_name" yaml:"track_name"`
	UserRating float64 `json:"user_rating" yaml:"user_rating"`
	TwinRating float64 `json:"twin_rating" yaml:"twin_rating"`
	CrowdAvg   float64 `json:"crowd_avg" yaml:"crowd_avg"`

	// Strength is |user delta| + |twin delta|; the report sorts on it.
	Strength float64 `json:"strength" yaml:"strength"`
}

// TasteTwinResult is the winning candidate of the pairwise correlation search.
type TasteTwinResult struct {
	TwinID          string           `json:"twin_id" yaml:"twin_id"`
	TwinName        string           `json:"twin_name" yaml:"twin_name"`
	Correlation     float64          `json:"correlation" yaml:"correlation"`
	OverlapCount    int              `json:"overlap_count" yaml:"overlap_count"`
	AlignedHotTakes []AlignedHotTake `json:"aligned_hot_takes" yaml:"aligned_hot_takes"`
}

// HotTakeReport measures how far a user's ratings sit from the crowd.
type HotTakeReport struct {
	// Index is the mean absolute delta from crowd averages.
	Index float64 `json:"index" yaml:"index"`

	// Percentile is the share of other participants with a strictly
	// smaller index, in [0, 100].
	Percentile float64 `json:"percentile" yaml:"percentile"`

	TopHotTakes []HotTake `json:"top_hot_takes" yaml:"top_hot_takes"`
}

// CohortPercentile ranks a user's mean rating within one cohort.
type CohortPercentile struct {
	Dimension  string  `json:"dimension" yaml:"dimension"`
	Value      string  `json:"value" yaml:"value"`
	CohortSize int     `json:"cohort_size" yaml:"cohort_size"`
	Percentile float64 `json:"percentile" yaml:"percentile"`

	// Suppressed is set when the cohort is below the minimum size; the
	// percentile is then meaningless and omitted from output.
	Suppressed bool `json:"suppressed" yaml:"suppressed"`
}

// CohortReport is the positivity card: the user's mean rating against the
// whole corpus and each cohort they belong to.
type CohortReport struct {
	UserMean      float64            `json:"user_mean" yaml:"user_mean"`
	ReviewCount   int                `json:"review_count" yaml:"review_count"`
	OverallMean   float64            `json:"overall_mean" yaml:"overall_mean"`
	AllPercentile float64            `json:"all_percentile" yaml:"all_percentile"`
	Cohorts       []CohortPercentile `json:"cohorts" yaml:"cohorts"`
}

// ThemeAffinity is one theme's effect on a user's ratings: the mean rating
// of songs where the theme is present (score >= 2) minus songs where it is
// absent (score == 1).
type ThemeAffinity struct {
	Theme     string  `json:"theme" yaml:"theme"`
	Diff      float64 `json:"diff" yaml:"diff"`
	HighMean  float64 `json:"high_mean" yaml:"high_mean"`
	LowMean   float64 `json:"low_mean" yaml:"low_mean"`
	HighCount int     `json:"high_count" yaml:"high_count"`
	LowCount  int     `json:"low_count" yaml:"low_count"`

	// Relative marks an entry listed as an aversion only because nothing
	// scored negative; it is the user's weakest positive preference.
	Relative bool `json:"relative,omitempty" yaml:"relative,omitempty"`
}

// ThemeReport classifies a user's thematic taste.
type ThemeReport struct {
	Personality   string          `json:"personality" yaml:"personality"`
	UserMean      float64         `json:"user_mean" yaml:"user_mean"`
	Affinities    []ThemeAffinity `json:"affinities" yaml:"affinities"`
	TopAffinities []ThemeAffinity `json:"top_affinities" yaml:"top_affinities"`
	TopAversions  []ThemeAffinity `json:"top_aversions" yaml:"top_aversions"`

	// LengthCorrelation is the Pearson correlation between song length
	// and the user's ratings; LengthStrength labels its magnitude.
	LengthCorrelation float64 `json:"length_correlation" yaml:"length_correlation"`
	LengthStrength    string  `json:"length_strength" yaml:"length_strength"`
}

// DecadeStat is the user's rating summary for one release decade.
type DecadeStat struct {
	Decade int     `json:"decade" yaml:"decade"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Count  int     `json:"count" yaml:"count"`
}

// EraReport describes how a user's ratings move across release decades.
type EraReport struct {
	Decades     []DecadeStat `json:"decades" yaml:"decades"`
	BestDecade  int          `json:"best_decade" yaml:"best_decade"`
	WorstDecade int          `json:"worst_decade" yaml:"worst_decade"`

	// TrendSlope is the least-squares slope of mean rating on decade.
	TrendSlope float64 `json:"trend_slope" yaml:"trend_slope"`

	// TrendDirection is "increasing", "decreasing", or "stable".
	TrendDirection string `json:"trend_direction" yaml:"trend_direction"`
}

// RatedSong pairs a song with the user's rating, used for examples.
type RatedSong struct {
	SongID         string  `json:"song_id" yaml:"song_id"`
	TrackName      string  `json:"track_name" yaml:"track_name"`
	Album          string  `json:"album" yaml:"album"`
	Year           int     `json:"year" yaml:"year"`
	PopularityRank int     `json:"popularity_rank" yaml:"popularity_rank"`
	Rating         float64 `json:"rating" yaml:"rating"`
}

// PopularityReport relates a user's ratings to song popularity.
type PopularityReport struct {
	// Correlation is Pearson r between rating and popularity rank over
	// the user's ranked songs. Rank is inverted (lower = more popular),
	// so a negative r means the user favors popular songs.
	Correlation float64 `json:"correlation" yaml:"correlation"`

	Strength    string `json:"strength" yaml:"strength"`
	Personality string `json:"personality" yaml:"personality"`
	RankedSongs int    `json:"ranked_songs" yaml:"ranked_songs"`

	PopularExamples []RatedSong `json:"popular_examples" yaml:"popular_examples"`
	ObscureExamples []RatedSong `json:"obscure_examples" yaml:"obscure_examples"`
}

// LagStats summarizes the days between song release and review.
type LagStats struct {
	MeanDays   float64 `json:"mean_days" yaml:"mean_days"`
	MedianDays float64 `json:"median_days" yaml:"median_days"`
}

// CadenceReport describes a user's temporal reviewing habits.
type CadenceReport struct {
	HourHistogram [24]int `json:"hour_histogram" yaml:"hour_histogram"`
	DayHistogram  [7]int  `json:"day_histogram" yaml:"day_histogram"`

	// MostActiveHour and MostActiveDay are the arg-max buckets; ties go
	// to the lowest index. Days are 0=Sunday through 6=Saturday.
	MostActiveHour int `json:"most_active_hour" yaml:"most_active_hour"`
	MostActiveDay  int `json:"most_active_day" yaml:"most_active_day"`

	Lag                 LagStats `json:"lag" yaml:"lag"`
	StreakCount         int      `json:"streak_count" yaml:"streak_count"`
	ReviewsPerActiveDay float64  `json:"reviews_per_active_day" yaml:"reviews_per_active_day"`
	ActiveDays          int      `json:"active_days" yaml:"active_days"`

	Archetype      string `json:"archetype" yaml:"archetype"`
	TimePreference string `json:"time_preference" yaml:"time_preference"`
	DayPreference  string `json:"day_preference" yaml:"day_preference"`
}

// PredictionFactor is one weighted input to the predictability score.
type PredictionFactor struct {
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Value       float64 `json:"value" yaml:"value"`
	Description string  `json:"description" yaml:"description"`
}

// PredictionReport grades how predictable a user's ratings are.
type PredictionReport struct {
	Grade          string             `json:"grade" yaml:"grade"`
	Predictability float64            `json:"predictability" yaml:"predictability"`
	UserMean       float64            `json:"user_mean" yaml:"user_mean"`
	UserStdDev     float64            `json:"user_stddev" yaml:"user_stddev"`
	Factors        []PredictionFactor `json:"factors" yaml:"factors"`
	Insights       []string           `json:"insights" yaml:"insights"`
}

// AlbumStat is the user's summary for one album.
type AlbumStat struct {
	Album string  `json:"album" yaml:"album"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Count int     `json:"count" yaml:"count"`
}

// AlbumReport names a user's favorite and least favorite albums and how
// many other participants rated them higher or lower.
type AlbumReport struct {
	Favorite          AlbumStat `json:"favorite" yaml:"favorite"`
	LikedFavoriteMore int       `json:"liked_favorite_more" yaml:"liked_favorite_more"`

	LeastFavorite  AlbumStat `json:"least_favorite" yaml:"least_favorite"`
	LikedLeastLess int       `json:"liked_least_less" yaml:"liked_least_less"`
}
