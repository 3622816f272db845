package database

import (
	"eduz_backend/internal/model"
	"log"

	"gorm.io/gorm"
)

type seedTopic struct {
	name string
}

type seedBranch struct {
	name   string
	topics []seedTopic
}

type seedSubject struct {
	name     string
	level    string
	gceID    string
	branches []seedBranch
}

// GCE Cameroon paper codes.
var seedSubjects = []seedSubject{
	{
		name: "Chemistry", level: "Ordinary", gceID: "0515",
		branches: []seedBranch{
			{name: "General Chemistry", topics: []seedTopic{
				{"Particulate Nature of Matter"}, {"Stoichiometry"}, {"Redox Reactions"}, {"The Periodic Table"},
			}},
			{name: "Organic Chemistry", topics: []seedTopic{
				{"Alkanes"}, {"Alkenes"}, {"Alcohols and Carboxylic Acids"},
			}},
		},
	},
	{
		name: "Chemistry", level: "Advanced", gceID: "0715",
		branches: []seedBranch{
			{name: "Physical Chemistry", topics: []seedTopic{
				{"Thermodynamics"}, {"Reaction Kinetics"}, {"Electrochemistry"},
			}},
			{name: "Inorganic Chemistry", topics: []seedTopic{
				{"Transition Elements"}, {"Group 2 Elements"}, {"Chemical Periodicity"},
			}},
			{name: "Organic Chemistry", topics: []seedTopic{
				{"Stereoisomerism"}, {"Hydrocarbons"}, {"Nitrogen Compounds"},
			}},
		},
	},
	{
		name: "Physics", level: "Ordinary", gceID: "0580",
		branches: []seedBranch{
			{name: "Mechanics", topics: []seedTopic{
				{"Vectors and Scalars"}, {"Motion in a straight line"}, {"Force and Newton's Laws"},
			}},
			{name: "Electricity and Magnetism", topics: []seedTopic{
				{"Static electricity"}, {"DC circuits"}, {"Electromagnetism"},
			}},
		},
	},
	{
		name: "Physics", level: "Advanced", gceID: "0780",
		branches: []seedBranch{
			{name: "General Physics", topics: []seedTopic{
				{"Measurement and its errors"}, {"Vectors and Moments"},
			}},
			{name: "Thermal Physics", topics: []seedTopic{
				{"Thermal properties of materials"}, {"Ideal gases"},
			}},
		},
	},
	{
		name: "Computer Science", level: "Ordinary", gceID: "0595",
		branches: []seedBranch{
			{name: "Computer Systems", topics: []seedTopic{
				{"Data Representation"}, {"Hardware"}, {"Software"},
			}},
			{name: "Programming", topics: []seedTopic{
				{"Programming Concepts"}, {"Algorithms and Pseudocode"}, {"Structured Programming"},
			}},
		},
	},
	{
		name: "Computer Science", level: "Advanced", gceID: "0795",
		branches: []seedBranch{
			{name: "Fundamental Theory", topics: []seedTopic{
				{"Data Types and Structures"}, {"Databases"},
			}},
			{name: "Fundamental Problem-Solving", topics: []seedTopic{
				{"Pseudocode"}, {"Flowcharts"},
			}},
			{name: "Advanced Theory", topics: []seedTopic{
				{"Computational Thinking"}, {"Ethics and Law"},
			}},
		},
	},
}

// SeedTaxonomy inserts the GCE subject/branch/topic tree when the subjects
// table is empty. Reruns are no-ops.
func SeedTaxonomy(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seedSubjects {
			subject := model.Subject{Name: s.name, Level: s.level, GceID: s.gceID}
			if err := tx.Create(&subject).Error; err != nil {
				return err
			}
			for _, b := range s.branches {
				branch := model.Branch{Name: b.name, SubjectID: subject.ID}
				if err := tx.Create(&branch).Error; err != nil {
					return err
				}
				branchID := branch.ID
				for _, t := range b.topics {
					topic := model.Topic{Name: t.name, SubjectID: subject.ID, BranchID: &branchID}
					if err := tx.Create(&topic).Error; err != nil {
						return err
					}
				}
			}
		}
		log.Println("Seeded GCE subjects, branches and topics")
		return nil
	})
}
