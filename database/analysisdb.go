// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of MLEX.
//
//  MLEX is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  MLEX is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with MLEX.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"mlex/merror"
	"mlex/morphology"
	"mlex/pipeline"
)

/*
Expected tables:

create table text_segments (
  id int auto_increment primary key,
  original_text text not null,
  sentence_count int not null,
  word_count int not null,
  processed_at timestamp default current_timestamp
);

create table sentences (
  id int auto_increment primary key,
  text_segment_id int not null references text_segments(id),
  sentence_text text not null,
  sentence_position int not null,
  word_count int not null
);

create table tokens (
  id int auto_increment primary key,
  sentence_id int not null references sentences(id),
  token varchar(255) not null,
  token_position int not null,
  is_punctuation bool not null,
  is_stopword bool not null
);

create table morphemes (
  id int auto_increment primary key,
  morpheme varchar(100) not null,
  type varchar(20) not null,
  meaning text,
  language varchar(10) not null default 'en',
  unique key uniq_morpheme (morpheme, type, language)
);

create table word_analysis (
  id int auto_increment primary key,
  text_segment_id int references text_segments(id),
  word varchar(255) not null,
  root varchar(255),
  prefix varchar(100),
  suffix varchar(100),
  lemma varchar(255),
  pos_tag varchar(100),
  analyzed_at timestamp default current_timestamp
);
*/

// AnalysisDB stores and retrieves analysis results. Its contract
// with the pipeline is intentionally thin: it accepts a fully
// formed AnalysisResult and answers lookup-by-word and
// lookup-by-recency queries.
type AnalysisDB struct {
	db *sql.DB
}

func NewAnalysisDB(db *sql.DB) *AnalysisDB {
	return &AnalysisDB{db: db}
}

type TextSegmentRecord struct {
	ID            int64     `json:"id"`
	TextPreview   string    `json:"textPreview"`
	SentenceCount int       `json:"sentenceCount"`
	WordCount     int       `json:"wordCount"`
	ProcessedAt   time.Time `json:"processedAt"`
}

type WordAnalysisRecord struct {
	ID         int64     `json:"id"`
	Word       string    `json:"word"`
	Root       string    `json:"root"`
	Prefix     string    `json:"prefix,omitempty"`
	Suffix     string    `json:"suffix,omitempty"`
	Lemma      string    `json:"lemma"`
	PosTag     string    `json:"posTag,omitempty"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

func posTag(ps morphology.POSSet) string {
	items := make([]string, len(ps))
	for i, v := range ps {
		items[i] = v.String()
	}
	return strings.Join(items, ",")
}

// StoreResult persists the whole analysis result in a single
// transaction and returns the id of the new text segment record.
func (adb *AnalysisDB) StoreResult(ctx context.Context, ans *pipeline.AnalysisResult) (int64, error) {
	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to store analysis result: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		"INSERT INTO text_segments (original_text, sentence_count, word_count) VALUES (?, ?, ?)",
		ans.Text, ans.Statistics.SentenceCount, ans.Statistics.WordCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to store text segment: %w", err)
	}
	textID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to store text segment: %w", err)
	}

	for _, sent := range ans.Sentences {
		sres, err := tx.ExecContext(
			ctx,
			"INSERT INTO sentences (text_segment_id, sentence_text, sentence_position, word_count) "+
				"VALUES (?, ?, ?, ?)",
			textID, sent.Text, sent.Position, sent.WordCount(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to store sentence: %w", err)
		}
		sentID, err := sres.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to store sentence: %w", err)
		}
		for _, tok := range sent.Tokens {
			_, err := tx.ExecContext(
				ctx,
				"INSERT INTO tokens (sentence_id, token, token_position, is_punctuation, is_stopword) "+
					"VALUES (?, ?, ?, ?, ?)",
				sentID, tok.Text, tok.Position, tok.IsPunctuation, tok.IsStopword,
			)
			if err != nil {
				return 0, fmt.Errorf("failed to store token: %w", err)
			}
		}
	}

	// deterministic insert order to keep replication/debugging sane
	words := make([]string, 0, len(ans.WordAnalyses))
	for w := range ans.WordAnalyses {
		words = append(words, w)
	}
	sort.Strings(words)
	for _, w := range words {
		wa := ans.WordAnalyses[w]
		_, err := tx.ExecContext(
			ctx,
			"INSERT INTO word_analysis (text_segment_id, word, root, prefix, suffix, lemma, pos_tag) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?)",
			textID, wa.Original, wa.Root, wa.Prefix, wa.Suffix, wa.Lemma, posTag(wa.PosCandidates),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to store word analysis: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to store analysis result: %w", err)
	}
	log.Debug().
		Int64("textId", textID).
		Int("sentences", len(ans.Sentences)).
		Int("wordAnalyses", len(ans.WordAnalyses)).
		Msg("stored analysis result")
	return textID, nil
}

// RecentTexts returns the most recently processed text segments.
func (adb *AnalysisDB) RecentTexts(ctx context.Context, limit int) ([]TextSegmentRecord, error) {
	rows, err := adb.db.QueryContext(
		ctx,
		"SELECT id, LEFT(original_text, 100), sentence_count, word_count, processed_at "+
			"FROM text_segments ORDER BY processed_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent texts: %w", err)
	}
	defer rows.Close()
	ans := make([]TextSegmentRecord, 0, limit)
	for rows.Next() {
		var rec TextSegmentRecord
		err := rows.Scan(
			&rec.ID, &rec.TextPreview, &rec.SentenceCount, &rec.WordCount, &rec.ProcessedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to load recent texts: %w", err)
		}
		ans = append(ans, rec)
	}
	return ans, rows.Err()
}

// WordAnalyses returns stored analyses of the word, most recent first.
func (adb *AnalysisDB) WordAnalyses(ctx context.Context, word string, limit int) ([]WordAnalysisRecord, error) {
	rows, err := adb.db.QueryContext(
		ctx,
		"SELECT id, word, IFNULL(root, ''), IFNULL(prefix, ''), IFNULL(suffix, ''), "+
			"IFNULL(lemma, ''), IFNULL(pos_tag, ''), analyzed_at "+
			"FROM word_analysis WHERE word = ? ORDER BY id DESC LIMIT ?",
		strings.ToLower(word), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load word analyses: %w", err)
	}
	defer rows.Close()
	var ans []WordAnalysisRecord
	for rows.Next() {
		var rec WordAnalysisRecord
		err := rows.Scan(
			&rec.ID, &rec.Word, &rec.Root, &rec.Prefix, &rec.Suffix,
			&rec.Lemma, &rec.PosTag, &rec.AnalyzedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to load word analyses: %w", err)
		}
		ans = append(ans, rec)
	}
	return ans, rows.Err()
}

// LoadMorphemes fetches the morpheme inventory for the language
// in insertion (id) order, which is the order the morpheme table
// uses to break equal-length ties.
func (adb *AnalysisDB) LoadMorphemes(ctx context.Context, language string) ([]morphology.MorphemeEntry, error) {
	rows, err := adb.db.QueryContext(
		ctx,
		"SELECT morpheme, type, IFNULL(meaning, '') FROM morphemes WHERE language = ? ORDER BY id",
		language,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load morphemes: %w", err)
	}
	defer rows.Close()
	var ans []morphology.MorphemeEntry
	for rows.Next() {
		var entry morphology.MorphemeEntry
		var kind string
		if err := rows.Scan(&entry.Form, &kind, &entry.Meaning); err != nil {
			return nil, fmt.Errorf("failed to load morphemes: %w", err)
		}
		entry.Kind = morphology.MorphemeKind(kind)
		ans = append(ans, entry)
	}
	return ans, rows.Err()
}

// AddMorpheme registers a custom morpheme. A duplicate
// (form, kind) pair for the language is a ConflictError.
func (adb *AnalysisDB) AddMorpheme(ctx context.Context, form, kind, meaning, language string) (int64, error) {
	form = strings.ToLower(strings.TrimSpace(form))
	var numMatching int
	err := adb.db.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM morphemes WHERE morpheme = ? AND type = ? AND language = ?",
		form, kind, language,
	).Scan(&numMatching)
	if err != nil {
		return 0, fmt.Errorf("failed to add morpheme: %w", err)
	}
	if numMatching > 0 {
		return 0, merror.ConflictError{
			Msg: fmt.Sprintf("morpheme already registered: %s (%s)", form, kind),
		}
	}
	res, err := adb.db.ExecContext(
		ctx,
		"INSERT INTO morphemes (morpheme, type, meaning, language) VALUES (?, ?, ?, ?)",
		form, kind, meaning, language,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add morpheme: %w", err)
	}
	return res.LastInsertId()
}

// TableCounts reports record counts of the main tables.
func (adb *AnalysisDB) TableCounts(ctx context.Context) (map[string]int, error) {
	ans := make(map[string]int)
	for _, table := range []string{"text_segments", "sentences", "tokens", "morphemes", "word_analysis"} {
		var cnt int
		err := adb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&cnt)
		if err != nil {
			return nil, fmt.Errorf("failed to count table %s: %w", table, err)
		}
		ans[table] = cnt
	}
	return ans, nil
}
