package entities

// DefaultCategory describes a built-in relationship category seeded on
// story creation.
type DefaultCategory struct {
	Name         string
	Description  string
	DisplayOrder int
}

// DefaultCategories are the built-in relationship categories.
var DefaultCategories = []DefaultCategory{
	{Name: "Family", Description: "Family relationships", DisplayOrder: 1},
	{Name: "Work", Description: "Professional relationships", DisplayOrder: 2},
	{Name: "Study", Description: "Academic relationships", DisplayOrder: 3},
	{Name: "Romantic", Description: "Romantic relationships", DisplayOrder: 4},
	{Name: "Sexual", Description: "Sexual relationships", DisplayOrder: 5},
	{Name: "Social", Description: "Social relationships", DisplayOrder: 6},
	{Name: "General", Description: "General relationships", DisplayOrder: 7},
	{Name: "Other", Description: "Other relationship types", DisplayOrder: 8},
}

// DefaultType describes a built-in relationship type. MaleInverse,
// FemaleInverse and NeutralInverse name the inverse candidates; the
// gendered ones double as the type's migrated male/female variant
// fields used by inverse resolution.
type DefaultType struct {
	Name           string
	Category       string
	Context        GenderContext
	Common         bool
	Description    string
	MaleInverse    string
	FemaleInverse  string
	NeutralInverse string
}

// DefaultTypes are the built-in relationship types seeded on story
// creation, with their inverse wiring.
var DefaultTypes = []DefaultType{
	// Family
	{Name: "Father", Category: "Family", Context: ContextMasculine, Common: true, Description: "Paternal relationship", MaleInverse: "Son", FemaleInverse: "Daughter", NeutralInverse: "Child"},
	{Name: "Mother", Category: "Family", Context: ContextFeminine, Common: true, Description: "Maternal relationship", MaleInverse: "Son", FemaleInverse: "Daughter", NeutralInverse: "Child"},
	{Name: "Son", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male child relationship", MaleInverse: "Father", FemaleInverse: "Mother", NeutralInverse: "Parent"},
	{Name: "Daughter", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female child relationship", MaleInverse: "Father", FemaleInverse: "Mother", NeutralInverse: "Parent"},
	{Name: "Brother", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male sibling relationship", MaleInverse: "Brother", FemaleInverse: "Sister", NeutralInverse: "Sibling"},
	{Name: "Sister", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female sibling relationship", MaleInverse: "Brother", FemaleInverse: "Sister", NeutralInverse: "Sibling"},
	{Name: "Husband", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male spouse relationship", FemaleInverse: "Wife", NeutralInverse: "Spouse"},
	{Name: "Wife", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female spouse relationship", MaleInverse: "Husband", NeutralInverse: "Spouse"},
	{Name: "Grandfather", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male grandparent relationship", MaleInverse: "Grandson", FemaleInverse: "Granddaughter", NeutralInverse: "Grandchild"},
	{Name: "Grandmother", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female grandparent relationship", MaleInverse: "Grandson", FemaleInverse: "Granddaughter", NeutralInverse: "Grandchild"},
	{Name: "Grandson", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male grandchild relationship", MaleInverse: "Grandfather", FemaleInverse: "Grandmother", NeutralInverse: "Grandparent"},
	{Name: "Granddaughter", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female grandchild relationship", MaleInverse: "Grandfather", FemaleInverse: "Grandmother", NeutralInverse: "Grandparent"},
	{Name: "Uncle", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male parental sibling relationship", MaleInverse: "Nephew", FemaleInverse: "Niece"},
	{Name: "Aunt", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female parental sibling relationship", MaleInverse: "Nephew", FemaleInverse: "Niece"},
	{Name: "Nephew", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male sibling's child relationship", MaleInverse: "Uncle", FemaleInverse: "Aunt"},
	{Name: "Niece", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female sibling's child relationship", MaleInverse: "Uncle", FemaleInverse: "Aunt"},
	{Name: "Cousin", Category: "Family", Context: ContextNeutral, Common: true, Description: "Extended family relationship", NeutralInverse: "Cousin"},
	{Name: "Step-father", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male step-parent relationship", MaleInverse: "Step-son", FemaleInverse: "Step-daughter"},
	{Name: "Step-mother", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female step-parent relationship", MaleInverse: "Step-son", FemaleInverse: "Step-daughter"},
	{Name: "Step-son", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male step-child relationship", MaleInverse: "Step-father", FemaleInverse: "Step-mother"},
	{Name: "Step-daughter", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female step-child relationship", MaleInverse: "Step-father", FemaleInverse: "Step-mother"},
	{Name: "Step-brother", Category: "Family", Context: ContextMasculine, Common: true, Description: "Male step-sibling relationship", MaleInverse: "Step-brother", FemaleInverse: "Step-sister"},
	{Name: "Step-sister", Category: "Family", Context: ContextFeminine, Common: true, Description: "Female step-sibling relationship", MaleInverse: "Step-brother", FemaleInverse: "Step-sister"},
	{Name: "Parent", Category: "Family", Context: ContextNeutral, Description: "Neutral parent relationship", MaleInverse: "Son", FemaleInverse: "Daughter", NeutralInverse: "Child"},
	{Name: "Child", Category: "Family", Context: ContextNeutral, Description: "Neutral child relationship", MaleInverse: "Father", FemaleInverse: "Mother", NeutralInverse: "Parent"},
	{Name: "Sibling", Category: "Family", Context: ContextNeutral, Description: "Neutral sibling relationship", MaleInverse: "Brother", FemaleInverse: "Sister", NeutralInverse: "Sibling"},
	{Name: "Spouse", Category: "Family", Context: ContextNeutral, Description: "Neutral spouse relationship", MaleInverse: "Husband", FemaleInverse: "Wife", NeutralInverse: "Spouse"},
	{Name: "Grandparent", Category: "Family", Context: ContextNeutral, Description: "Neutral grandparent relationship", MaleInverse: "Grandson", FemaleInverse: "Granddaughter", NeutralInverse: "Grandchild"},
	{Name: "Grandchild", Category: "Family", Context: ContextNeutral, Description: "Neutral grandchild relationship", MaleInverse: "Grandfather", FemaleInverse: "Grandmother", NeutralInverse: "Grandparent"},

	// Work
	{Name: "Boss", Category: "Work", Context: ContextNeutral, Common: true, Description: "Superior at work", NeutralInverse: "Employee"},
	{Name: "Employee", Category: "Work", Context: ContextNeutral, Common: true, Description: "Reports to another person at work", NeutralInverse: "Boss"},
	{Name: "Coworker", Category: "Work", Context: ContextNeutral, Common: true, Description: "Works alongside another person", NeutralInverse: "Coworker"},
	{Name: "Colleague", Category: "Work", Context: ContextNeutral, Common: true, Description: "Professional associate", NeutralInverse: "Colleague"},
	{Name: "Assistant", Category: "Work", Context: ContextNeutral, Common: true, Description: "Helps or supports another person at work", NeutralInverse: "Boss"},
	{Name: "Mentor", Category: "Work", Context: ContextNeutral, Common: true, Description: "Provides guidance and advice", NeutralInverse: "Mentee"},
	{Name: "Mentee", Category: "Work", Context: ContextNeutral, Common: true, Description: "Receives guidance and advice", NeutralInverse: "Mentor"},
	{Name: "Supervisor", Category: "Work", Context: ContextNeutral, Common: true, Description: "Oversees work of another person", NeutralInverse: "Subordinate"},
	{Name: "Subordinate", Category: "Work", Context: ContextNeutral, Common: true, Description: "Work is overseen by another person", NeutralInverse: "Supervisor"},
	{Name: "Business partner", Category: "Work", Context: ContextNeutral, Common: true, Description: "Shares business interests", NeutralInverse: "Business partner"},

	// Study
	{Name: "Teacher", Category: "Study", Context: ContextNeutral, Common: true, Description: "Provides education", NeutralInverse: "Student"},
	{Name: "Student", Category: "Study", Context: ContextNeutral, Common: true, Description: "Receives education", NeutralInverse: "Teacher"},
	{Name: "Classmate", Category: "Study", Context: ContextNeutral, Common: true, Description: "Attends same class", NeutralInverse: "Classmate"},
	{Name: "Schoolmate", Category: "Study", Context: ContextNeutral, Common: true, Description: "Attends same school", NeutralInverse: "Schoolmate"},
	{Name: "Roommate", Category: "Study", Context: ContextNeutral, Common: true, Description: "Shares living space", NeutralInverse: "Roommate"},

	// Romantic
	{Name: "Boyfriend", Category: "Romantic", Context: ContextMasculine, Common: true, Description: "Male romantic partner", FemaleInverse: "Girlfriend", NeutralInverse: "Partner"},
	{Name: "Girlfriend", Category: "Romantic", Context: ContextFeminine, Common: true, Description: "Female romantic partner", MaleInverse: "Boyfriend", NeutralInverse: "Partner"},
	{Name: "Fiancé", Category: "Romantic", Context: ContextMasculine, Common: true, Description: "Male engaged partner", FemaleInverse: "Fiancée"},
	{Name: "Fiancée", Category: "Romantic", Context: ContextFeminine, Common: true, Description: "Female engaged partner", MaleInverse: "Fiancé"},
	{Name: "Lover", Category: "Romantic", Context: ContextNeutral, Common: true, Description: "Romantic or sexual partner", NeutralInverse: "Lover"},
	{Name: "Ex-boyfriend", Category: "Romantic", Context: ContextMasculine, Common: true, Description: "Former male romantic partner", FemaleInverse: "Ex-girlfriend"},
	{Name: "Ex-girlfriend", Category: "Romantic", Context: ContextFeminine, Common: true, Description: "Former female romantic partner", MaleInverse: "Ex-boyfriend"},
	{Name: "Ex-husband", Category: "Romantic", Context: ContextMasculine, Common: true, Description: "Former male spouse", FemaleInverse: "Ex-wife", NeutralInverse: "Ex-spouse"},
	{Name: "Ex-wife", Category: "Romantic", Context: ContextFeminine, Common: true, Description: "Former female spouse", MaleInverse: "Ex-husband", NeutralInverse: "Ex-spouse"},
	{Name: "Ex-spouse", Category: "Romantic", Context: ContextNeutral, Description: "Former spouse", MaleInverse: "Ex-husband", FemaleInverse: "Ex-wife", NeutralInverse: "Ex-spouse"},
	{Name: "Partner", Category: "Romantic", Context: ContextNeutral, Common: true, Description: "Committed relationship partner", NeutralInverse: "Partner"},
	{Name: "Significant other", Category: "Romantic", Context: ContextNeutral, Description: "Romantic partner", NeutralInverse: "Significant other"},

	// Social
	{Name: "Friend", Category: "Social", Context: ContextNeutral, Common: true, Description: "Social companion", NeutralInverse: "Friend"},
	{Name: "Best friend", Category: "Social", Context: ContextNeutral, Common: true, Description: "Close friend", NeutralInverse: "Best friend"},
	{Name: "Acquaintance", Category: "Social", Context: ContextNeutral, Common: true, Description: "Casual social connection", NeutralInverse: "Acquaintance"},
	{Name: "Neighbor", Category: "Social", Context: ContextNeutral, Common: true, Description: "Lives nearby", NeutralInverse: "Neighbor"},
	{Name: "Roommate", Category: "Social", Context: ContextNeutral, Common: true, Description: "Shares living space", NeutralInverse: "Roommate"},

	// Other
	{Name: "Rival", Category: "Other", Context: ContextNeutral, Common: true, Description: "Competes against", NeutralInverse: "Rival"},
	{Name: "Enemy", Category: "Other", Context: ContextNeutral, Common: true, Description: "Hostile relationship", NeutralInverse: "Enemy"},
	{Name: "Ally", Category: "Other", Context: ContextNeutral, Common: true, Description: "Cooperates with", NeutralInverse: "Ally"},
	{Name: "Guardian", Category: "Other", Context: ContextNeutral, Common: true, Description: "Protects or looks after", NeutralInverse: "Ward"},
	{Name: "Ward", Category: "Other", Context: ContextNeutral, Common: true, Description: "Protected by another person", NeutralInverse: "Guardian"},
	{Name: "Caretaker", Category: "Other", Context: ContextNeutral, Common: true, Description: "Provides care", NeutralInverse: "Ward"},
}
