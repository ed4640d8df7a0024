package assignment

// CAPS curriculum catalogs offered by the generation form.

type GradeLevel string

const (
	GradeR  GradeLevel = "Grade R"
	Grade1  GradeLevel = "Grade 1"
	Grade2  GradeLevel = "Grade 2"
	Grade3  GradeLevel = "Grade 3"
	Grade4  GradeLevel = "Grade 4"
	Grade5  GradeLevel = "Grade 5"
	Grade6  GradeLevel = "Grade 6"
	Grade7  GradeLevel = "Grade 7"
	Grade8  GradeLevel = "Grade 8"
	Grade9  GradeLevel = "Grade 9"
	Grade10 GradeLevel = "Grade 10"
	Grade11 GradeLevel = "Grade 11"
	Grade12 GradeLevel = "Grade 12"
)

var GradeLevels = []GradeLevel{
	GradeR, Grade1, Grade2, Grade3, Grade4, Grade5, Grade6,
	Grade7, Grade8, Grade9, Grade10, Grade11, Grade12,
}

func (g GradeLevel) IsValid() bool {
	for _, gl := range GradeLevels {
		if g == gl {
			return true
		}
	}
	return false
}

type Subject string

const (
	// Foundation Phase
	SubjectLifeSkills Subject = "Life Skills"
	// General
	SubjectMathematics     Subject = "Mathematics"
	SubjectEnglish         Subject = "English Home Language"
	SubjectAfrikaans       Subject = "Afrikaans EAT"
	SubjectZulu            Subject = "isiZulu FAL"
	SubjectNaturalSciences Subject = "Natural Sciences"
	SubjectSocialSciences  Subject = "Social Sciences (History & Geography)"
	SubjectTechnology      Subject = "Technology"
	SubjectEMS             Subject = "Economic and Management Sciences (EMS)"
	SubjectCreativeArts    Subject = "Creative Arts"
	SubjectLifeOrientation Subject = "Life Orientation"
	// FET Phase
	SubjectMathLiteracy     Subject = "Mathematical Literacy"
	SubjectPhysicalSciences Subject = "Physical Sciences"
	SubjectLifeSciences     Subject = "Life Sciences"
	SubjectHistory          Subject = "History"
	SubjectGeography        Subject = "Geography"
	SubjectAccounting       Subject = "Accounting"
	SubjectBusinessStudies  Subject = "Business Studies"
	SubjectCAT              Subject = "Computer Applications Technology (CAT)"
)

var Subjects = []Subject{
	SubjectLifeSkills,
	SubjectMathematics, SubjectEnglish, SubjectAfrikaans, SubjectZulu,
	SubjectNaturalSciences, SubjectSocialSciences, SubjectTechnology,
	SubjectEMS, SubjectCreativeArts, SubjectLifeOrientation,
	SubjectMathLiteracy, SubjectPhysicalSciences, SubjectLifeSciences,
	SubjectHistory, SubjectGeography, SubjectAccounting,
	SubjectBusinessStudies, SubjectCAT,
}

func (s Subject) IsValid() bool {
	for _, sub := range Subjects {
		if s == sub {
			return true
		}
	}
	return false
}

type Language string

const (
	LangEnglish    Language = "English"
	LangAfrikaans  Language = "Afrikaans"
	LangIsiZulu    Language = "isiZulu"
	LangIsiXhosa   Language = "isiXhosa"
	LangIsiNdebele Language = "isiNdebele"
	LangSesotho    Language = "Sesotho"
	LangSepedi     Language = "Sepedi"
	LangSetswana   Language = "Setswana"
	LangSiswati    Language = "siSwati"
	LangTshivenda  Language = "Tshivenda"
	LangXitsonga   Language = "Xitsonga"
)

var Languages = []Language{
	LangEnglish, LangAfrikaans, LangIsiZulu, LangIsiXhosa, LangIsiNdebele,
	LangSesotho, LangSepedi, LangSetswana, LangSiswati, LangTshivenda, LangXitsonga,
}

func (l Language) IsValid() bool {
	for _, lang := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}
