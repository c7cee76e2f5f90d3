package database

import (
	"skillcheck_backend/internal/model"
	"skillcheck_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultTopicFeatures is the reference catalog used by topic recommendations.
func DefaultTopicFeatures() []model.TopicFeature {
	return []model.TopicFeature{
		{Topic: "database", Difficulty: 3, Category: "data_management", Popularity: 0.8,
			Prerequisites: datatypes.JSONSlice[string]{"sql", "data_structures"},
			RelatedTopics: datatypes.JSONSlice[string]{"sql", "normalization", "indexing"}},
		{Topic: "algorithms", Difficulty: 4, Category: "computer_science", Popularity: 0.9,
			Prerequisites: datatypes.JSONSlice[string]{"programming", "mathematics"},
			RelatedTopics: datatypes.JSONSlice[string]{"sorting", "searching", "dynamic_programming"}},
		{Topic: "networks", Difficulty: 3, Category: "systems", Popularity: 0.7,
			Prerequisites: datatypes.JSONSlice[string]{"computer_basics"},
			RelatedTopics: datatypes.JSONSlice[string]{"tcp_ip", "osi_model", "routing"}},
		{Topic: "dynamic_programming", Difficulty: 5, Category: "computer_science", Popularity: 0.6,
			Prerequisites: datatypes.JSONSlice[string]{"algorithms", "recursion"},
			RelatedTopics: datatypes.JSONSlice[string]{"memoization", "optimization", "algorithms"}},
		{Topic: "oop", Difficulty: 2, Category: "programming", Popularity: 0.8,
			Prerequisites: datatypes.JSONSlice[string]{"programming"},
			RelatedTopics: datatypes.JSONSlice[string]{"classes", "inheritance", "polymorphism"}},
		{Topic: "operating_systems", Difficulty: 4, Category: "systems", Popularity: 0.7,
			Prerequisites: datatypes.JSONSlice[string]{"computer_basics", "algorithms"},
			RelatedTopics: datatypes.JSONSlice[string]{"processes", "memory", "file_systems"}},
		{Topic: "coding_practice", Difficulty: 2, Category: "programming", Popularity: 0.9,
			Prerequisites: datatypes.JSONSlice[string]{"programming"},
			RelatedTopics: datatypes.JSONSlice[string]{"problem_solving", "algorithms", "data_structures"}},
	}
}

// SeedTopicFeatures 话题特征表为空时写入默认目录
func SeedTopicFeatures(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.TopicFeature{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	features := DefaultTopicFeatures()
	for i := range features {
		features[i].Position = i
	}
	return db.Create(&features).Error
}

type demoQuestion struct {
	text       string
	options    []string
	correct    int
	difficulty model.QuestionDifficulty
}

type demoSubject struct {
	name        string
	description string
	questions   []demoQuestion
	courses     []model.Course
}

func demoSubjects() []demoSubject {
	return []demoSubject{
		{
			name:        "Algorithms",
			description: "Sorting, searching and complexity analysis",
			questions: []demoQuestion{
				{"What is the worst-case complexity of binary search?", []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"}, 1, model.DifficultyEasy},
				{"Which structure gives FIFO ordering?", []string{"Stack", "Queue", "Heap", "Trie"}, 1, model.DifficultyEasy},
				{"Which sort is stable by default?", []string{"Quick sort", "Heap sort", "Merge sort", "Selection sort"}, 2, model.DifficultyEasy},
				{"Average complexity of quicksort?", []string{"O(n^2)", "O(n log n)", "O(log n)", "O(n)"}, 1, model.DifficultyMedium},
				{"Dijkstra's algorithm fails with…", []string{"Cycles", "Negative edges", "Dense graphs", "Self loops"}, 1, model.DifficultyMedium},
				{"A min-heap insert costs…", []string{"O(1)", "O(log n)", "O(n)", "O(n log n)"}, 1, model.DifficultyMedium},
				{"Knapsack 0/1 is typically solved with…", []string{"Greedy", "Dynamic programming", "Backtracking only", "Binary search"}, 1, model.DifficultyHard},
				{"Amortized cost of dynamic array append?", []string{"O(1)", "O(log n)", "O(n)", "O(sqrt n)"}, 0, model.DifficultyHard},
			},
			courses: []model.Course{
				{Title: "Algorithms 101", Level: model.LevelBeginner, Description: "Big-O, arrays and basic sorting"},
				{Title: "Graph Algorithms", Level: model.LevelIntermediate, Description: "BFS, DFS and shortest paths"},
				{Title: "Dynamic Programming Patterns", Level: model.LevelAdvanced, Description: "Memoization and tabulation"},
			},
		},
		{
			name:        "Database",
			description: "Relational modeling, SQL and indexing",
			questions: []demoQuestion{
				{"Which SQL clause filters rows?", []string{"ORDER BY", "WHERE", "GROUP BY", "LIMIT"}, 1, model.DifficultyEasy},
				{"A primary key must be…", []string{"Nullable", "Unique", "Text", "Indexed twice"}, 1, model.DifficultyEasy},
				{"Which join keeps all left rows?", []string{"INNER", "LEFT", "CROSS", "SELF"}, 1, model.DifficultyMedium},
				{"3NF removes…", []string{"Transitive dependencies", "Primary keys", "Indexes", "Views"}, 0, model.DifficultyMedium},
				{"Which isolation level prevents phantom reads?", []string{"Read committed", "Repeatable read", "Serializable", "Read uncommitted"}, 2, model.DifficultyHard},
			},
			courses: []model.Course{
				{Title: "SQL Foundations", Level: model.LevelBeginner, Description: "SELECT, WHERE and joins"},
				{Title: "Database Design", Level: model.LevelIntermediate, Description: "Normalization and modeling"},
			},
		},
		{
			name:        "Networks",
			description: "Protocols, addressing and routing",
			questions: []demoQuestion{
				{"HTTP runs over which transport by default?", []string{"UDP", "TCP", "ICMP", "ARP"}, 1, model.DifficultyEasy},
				{"How many layers has the OSI model?", []string{"4", "5", "7", "9"}, 2, model.DifficultyEasy},
				{"A /24 IPv4 subnet has how many addresses?", []string{"128", "256", "512", "1024"}, 1, model.DifficultyMedium},
				{"BGP is a…", []string{"Link-state IGP", "Path-vector EGP", "Transport protocol", "Tunnel"}, 1, model.DifficultyHard},
			},
			courses: []model.Course{
				{Title: "TCP/IP Deep Dive", Level: model.LevelIntermediate, Description: "Handshakes, windows and congestion"},
			},
		},
	}
}

// SeedDemoData 空库时写入演示学科、题目和课程
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, ds := range demoSubjects() {
			subject := model.Subject{Name: ds.name, Description: ds.description}
			if err := tx.Create(&subject).Error; err != nil {
				return err
			}
			for _, dq := range ds.questions {
				q := model.AssessmentQuestion{
					SubjectID:    subject.ID,
					Text:         dq.text,
					Options:      datatypes.JSONSlice[string](dq.options),
					CorrectIndex: dq.correct,
					Difficulty:   dq.difficulty,
				}
				if err := tx.Create(&q).Error; err != nil {
					return err
				}
			}
			for _, c := range ds.courses {
				c.SubjectID = subject.ID
				if err := tx.Create(&c).Error; err != nil {
					return err
				}
			}
			logger.Log.Debug("seeded demo subject", zap.String("subject", ds.name), zap.Int("questions", len(ds.questions)))
		}
		return nil
	})
}
