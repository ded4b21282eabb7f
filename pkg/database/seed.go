package database

import (
	"log"

	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

// SeedCurriculum populates subjects, topics and learning resources once.
// It is a no-op whenever any subject row already exists, so restarting the
// process never duplicates curriculum data.
func SeedCurriculum(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding curriculum data...")

	return db.Transaction(func(tx *gorm.DB) error {
		subjects := []model.Subject{
			{Name: "Programming in C", Semester: 1, Description: "Introduction to programming fundamentals", TotalTopics: 15},
			{Name: "Mathematics-I", Semester: 1, Description: "Engineering Mathematics basics", TotalTopics: 12},
			{Name: "Physics", Semester: 1, Description: "Applied Physics for Engineers", TotalTopics: 10},
			{Name: "Data Structures", Semester: 2, Description: "Arrays, Linked Lists, Trees, Graphs", TotalTopics: 18},
			{Name: "Object Oriented Programming (Java)", Semester: 2, Description: "OOP concepts with Java", TotalTopics: 16},
			{Name: "Mathematics-II", Semester: 2, Description: "Advanced Engineering Mathematics", TotalTopics: 12},
			{Name: "Database Management Systems", Semester: 3, Description: "SQL, Normalization, Transactions", TotalTopics: 20},
			{Name: "Operating Systems", Semester: 3, Description: "Process, Memory, File Management", TotalTopics: 18},
			{Name: "Computer Networks", Semester: 3, Description: "Network Protocols and Architecture", TotalTopics: 16},
			{Name: "Discrete Mathematics", Semester: 3, Description: "Logic, Sets, Graph Theory", TotalTopics: 14},
			{Name: "Design and Analysis of Algorithms", Semester: 4, Description: "Algorithm Design Techniques", TotalTopics: 20},
			{Name: "Web Technologies", Semester: 4, Description: "HTML, CSS, JavaScript, React", TotalTopics: 22},
			{Name: "Software Engineering", Semester: 4, Description: "SDLC, Design Patterns", TotalTopics: 15},
			{Name: "Artificial Intelligence", Semester: 5, Description: "Search, Logic, Machine Learning", TotalTopics: 20},
			{Name: "Machine Learning", Semester: 5, Description: "Supervised and Unsupervised Learning", TotalTopics: 18},
			{Name: "Compiler Design", Semester: 5, Description: "Lexical Analysis, Parsing", TotalTopics: 16},
			{Name: "Deep Learning", Semester: 6, Description: "Neural Networks, CNN, RNN", TotalTopics: 20},
			{Name: "Cloud Computing", Semester: 6, Description: "AWS, Azure, Docker, Kubernetes", TotalTopics: 18},
			{Name: "Cyber Security", Semester: 6, Description: "Cryptography, Network Security", TotalTopics: 16},
			{Name: "Natural Language Processing", Semester: 7, Description: "Text Processing, Transformers", TotalTopics: 18},
			{Name: "Big Data Analytics", Semester: 7, Description: "Hadoop, Spark, NoSQL", TotalTopics: 16},
			{Name: "Internet of Things", Semester: 7, Description: "IoT Architecture, Sensors", TotalTopics: 14},
			{Name: "Blockchain Technology", Semester: 8, Description: "Distributed Ledger, Smart Contracts", TotalTopics: 15},
			{Name: "Quantum Computing", Semester: 8, Description: "Quantum Gates, Algorithms", TotalTopics: 12},
		}
		if err := tx.Create(&subjects).Error; err != nil {
			return err
		}

		subjectID := func(name string) uint {
			for _, s := range subjects {
				if s.Name == name {
					return s.ID
				}
			}
			return 0
		}

		topics := []model.Topic{
			{SubjectID: subjectID("Mathematics-I"), Name: "Matrices", Description: "Types of matrices, Rank, Inverse", Difficulty: model.Beginner, OrderIndex: 1},
			{SubjectID: subjectID("Mathematics-I"), Name: "Calculus", Description: "Limits, Continuity, Differentiation", Difficulty: model.Intermediate, OrderIndex: 2},
			{SubjectID: subjectID("Mathematics-I"), Name: "Differential Equations", Description: "First order and higher order", Difficulty: model.Advanced, OrderIndex: 3},

			{SubjectID: subjectID("Physics"), Name: "Quantum Mechanics", Description: "Wave-particle duality, Schrodinger equation", Difficulty: model.Advanced, OrderIndex: 1},
			{SubjectID: subjectID("Physics"), Name: "Optics", Description: "Interference, Diffraction, Polarization", Difficulty: model.Intermediate, OrderIndex: 2},
			{SubjectID: subjectID("Physics"), Name: "Electromagnetism", Description: "Maxwell equations, EM waves", Difficulty: model.Intermediate, OrderIndex: 3},

			{SubjectID: subjectID("Programming in C"), Name: "Introduction to C", Description: "Variables, Data Types, Operators", Difficulty: model.Beginner, OrderIndex: 1},
			{SubjectID: subjectID("Programming in C"), Name: "Control Structures", Description: "If-else, Loops (for, while)", Difficulty: model.Beginner, OrderIndex: 2},
			{SubjectID: subjectID("Programming in C"), Name: "Arrays and Strings", Description: "1D/2D Arrays, String handling", Difficulty: model.Intermediate, OrderIndex: 3},
			{SubjectID: subjectID("Programming in C"), Name: "Pointers", Description: "Pointer arithmetic, Memory management", Difficulty: model.Advanced, OrderIndex: 4},

			{SubjectID: subjectID("Object Oriented Programming (Java)"), Name: "Java Basics", Description: "JVM, JRE, Syntax", Difficulty: model.Beginner, OrderIndex: 1},
			{SubjectID: subjectID("Object Oriented Programming (Java)"), Name: "OOP Concepts", Description: "Classes, Objects, Inheritance", Difficulty: model.Intermediate, OrderIndex: 2},
			{SubjectID: subjectID("Object Oriented Programming (Java)"), Name: "Collections", Description: "List, Set, Map", Difficulty: model.Advanced, OrderIndex: 3},

			{SubjectID: subjectID("Database Management Systems"), Name: "Introduction to DBMS", Description: "Database concepts", Difficulty: model.Beginner, OrderIndex: 1},
			{SubjectID: subjectID("Database Management Systems"), Name: "SQL Basics", Description: "SELECT, INSERT, UPDATE", Difficulty: model.Intermediate, OrderIndex: 2},

			{SubjectID: subjectID("Web Technologies"), Name: "HTML/CSS", Description: "Structure and Style", Difficulty: model.Beginner, OrderIndex: 1},
			{SubjectID: subjectID("Web Technologies"), Name: "JavaScript", Description: "DOM, ES6", Difficulty: model.Intermediate, OrderIndex: 2},
		}
		if err := tx.Create(&topics).Error; err != nil {
			return err
		}

		topicID := func(name string) uint {
			for _, t := range topics {
				if t.Name == name {
					return t.ID
				}
			}
			return 0
		}

		resources := []model.LearningResource{
			{TopicID: topicID("Introduction to C"), Type: model.Video, Title: "C Programming in One Shot", URL: "https://www.youtube.com/watch?v=irqbmMNs2Bo", Language: "english", Difficulty: model.Beginner},
			{TopicID: topicID("Introduction to C"), Type: model.Article, Title: "C Language GeeksforGeeks", URL: "https://www.geeksforgeeks.org/c-programming-language/", Language: "english", Difficulty: model.Beginner},
			{TopicID: topicID("Matrices"), Type: model.Video, Title: "Matrices One Shot", URL: "https://www.youtube.com/watch?v=xyz123", Language: "english", Difficulty: model.Beginner},
			{TopicID: topicID("Matrices"), Type: model.Article, Title: "Matrices Notes", URL: "https://www.mathsisfun.com/algebra/matrix-introduction.html", Language: "english", Difficulty: model.Beginner},
			{TopicID: topicID("Quantum Mechanics"), Type: model.Video, Title: "Quantum Mechanics Basics", URL: "https://www.youtube.com/watch?v=example", Language: "english", Difficulty: model.Advanced},
			{TopicID: topicID("Java Basics"), Type: model.Video, Title: "Java Tutorial for Beginners", URL: "https://www.youtube.com/watch?v=eIrMbAQSU34", Language: "english", Difficulty: model.Beginner},
		}
		if err := tx.Create(&resources).Error; err != nil {
			return err
		}

		log.Println("Curriculum seed completed")
		return nil
	})
}
