package catalog

import "github.com/kalambet/careercompass/internal/career"

// Category groups catalog careers. Order matters: recommendations list
// categories in this order before scoring.
type Category string

const (
	Tech     Category = "tech"
	Arts     Category = "arts"
	Science  Category = "science"
	Business Category = "business"
)

var categories = []Category{Tech, Arts, Science, Business}

func res(name, url string, kind career.ResourceKind) career.Resource {
	return career.Resource{Name: name, URL: url, Kind: kind}
}

func job(title, org, location, url, deadline string) career.Opportunity {
	return career.Opportunity{Title: title, Organization: org, Location: location, URL: url, Kind: career.Job, Deadline: deadline}
}

func study(title, org, location, url, deadline string) career.Opportunity {
	return career.Opportunity{Title: title, Organization: org, Location: location, URL: url, Kind: career.Study, Deadline: deadline}
}

func entry(id int, title, desc, match, icon string, color career.Color, rs []career.Resource, ops []career.Opportunity) career.Suggestion {
	return career.Suggestion{
		ID:                    id,
		Title:                 title,
		Description:           desc,
		Match:                 match,
		Resources:             rs,
		Opportunities:         ops,
		RequiredSkills:        []string{},
		SalaryRange:           career.NotSpecified,
		GrowthProspects:       career.NotSpecified,
		EducationRequirements: career.NotSpecified,
		Icon:                  icon,
		Color:                 color,
	}
}

// careers returns a fresh copy of the catalog on every call so callers may
// modify what they get.
func careers() map[Category][]career.Suggestion {
	return map[Category][]career.Suggestion{
		Tech: {
			entry(1, "Software Developer",
				"Design, develop, and maintain software systems and applications that solve real-world problems.",
				"Your technical skills, problem-solving abilities, and interest in logical thinking make you well-suited for software development.",
				"Code", career.Blue,
				[]career.Resource{
					res("freeCodeCamp", "https://www.freecodecamp.org/", career.Course),
					res("The Odin Project", "https://www.theodinproject.com/", career.Course),
					res("GitHub", "https://github.com/", career.Tool),
				},
				[]career.Opportunity{
					job("Junior Software Developer", "Tech Solutions Inc.", "Remote", "https://example.com/jobs/tech-solutions", "2025-05-15"),
					study("Masters in Computer Science", "Princeton University", "Princeton, NJ", "https://example.com/study/princeton-cs", "2025-06-30"),
				}),
			entry(2, "Data Scientist",
				"Analyze complex data sets to identify trends and insights that drive business decisions.",
				"Your analytical mindset, mathematical background, and interest in finding patterns make data science an excellent fit.",
				"BarChart", career.Purple,
				[]career.Resource{
					res("Kaggle", "https://www.kaggle.com/", career.Tool),
					res("DataCamp", "https://www.datacamp.com/", career.Course),
					res("Python for Data Analysis", "https://wesmckinney.com/book/", career.Book),
				},
				[]career.Opportunity{
					job("Data Analyst", "Global Analytics", "New York, NY", "https://example.com/jobs/global-analytics", ""),
					study("PhD in Data Science", "MIT", "Cambridge, MA", "https://example.com/study/mit-data-science", ""),
				}),
			entry(3, "UX/UI Designer",
				"Create intuitive and engaging user experiences for websites and applications.",
				"Your creativity, empathy, and interest in how people interact with technology suggest you'd excel in UX/UI design.",
				"Palette", career.Pink,
				[]career.Resource{
					res("Figma", "https://www.figma.com/", career.Tool),
					res("Interaction Design Foundation", "https://www.interaction-design.org/", career.Course),
					res("Nielsen Norman Group", "https://www.nngroup.com/", career.Website),
				},
				[]career.Opportunity{
					job("UX Designer Internship", "Creative Studios", "San Francisco, CA", "https://example.com/jobs/creative-studios", ""),
					study("Master of Human-Computer Interaction", "Carnegie Mellon University", "Pittsburgh, PA", "https://example.com/study/cmu-hci", ""),
				}),
		},
		Arts: {
			entry(4, "Content Creator",
				"Develop engaging content for various platforms, including blogs, social media, and video.",
				"Your creativity, communication skills, and interest in storytelling make content creation a strong match.",
				"Edit", career.Orange,
				[]career.Resource{
					res("Coursera - Content Strategy", "https://www.coursera.org/specializations/content-strategy", career.Course),
					res("Canva", "https://www.canva.com/", career.Tool),
					res("Digital Marketing Institute", "https://digitalmarketinginstitute.com/", career.Website),
				},
				[]career.Opportunity{
					job("Content Marketing Specialist", "Media Matters", "Chicago, IL", "https://example.com/jobs/media-matters", ""),
					study("MFA in Creative Writing", "Columbia University", "New York, NY", "https://example.com/study/columbia-writing", ""),
				}),
			entry(5, "Digital Marketing Specialist",
				"Plan and execute marketing campaigns across digital channels to build brand awareness and drive conversions.",
				"Your analytical abilities, creativity, and interest in psychology and consumer behavior align well with digital marketing.",
				"TrendingUp", career.Teal,
				[]career.Resource{
					res("Google Digital Garage", "https://learndigital.withgoogle.com/digitalgarage", career.Course),
					res("HubSpot Academy", "https://academy.hubspot.com/", career.Course),
					res("SEMrush", "https://www.semrush.com/", career.Tool),
				},
				[]career.Opportunity{
					job("Digital Marketing Coordinator", "Brand Elevate", "Austin, TX", "https://example.com/jobs/brand-elevate", ""),
					study("MSc in Digital Marketing", "University of Edinburgh", "Edinburgh, UK", "https://example.com/study/edinburgh-marketing", ""),
				}),
		},
		Science: {
			entry(6, "Research Scientist",
				"Conduct experiments and research to advance knowledge in a specific scientific field.",
				"Your analytical thinking, attention to detail, and curiosity about how things work suggest research science would be fulfilling.",
				"Flask", career.Blue,
				[]career.Resource{
					res("edX - Science Courses", "https://www.edx.org/learn/science", career.Course),
					res("ResearchGate", "https://www.researchgate.net/", career.Website),
					res("Coursera - Data Science", "https://www.coursera.org/specializations/jhu-data-science", career.Course),
				},
				[]career.Opportunity{
					job("Research Assistant", "National Research Institute", "Boston, MA", "https://example.com/jobs/national-research", ""),
					study("PhD in Biochemistry", "Stanford University", "Stanford, CA", "https://example.com/study/stanford-biochem", ""),
				}),
			entry(7, "Healthcare Professional",
				"Provide medical care and support to patients in various healthcare settings.",
				"Your empathy, communication skills, and interest in human biology and wellbeing point to healthcare as an excellent path.",
				"Heartbeat", career.Pink,
				[]career.Resource{
					res("Khan Academy - Health & Medicine", "https://www.khanacademy.org/science/health-and-medicine", career.Course),
					res("Coursera - Healthcare", "https://www.coursera.org/browse/health", career.Course),
					res("MedlinePlus", "https://medlineplus.gov/", career.Website),
				},
				[]career.Opportunity{
					job("Registered Nurse", "Memorial Hospital", "Denver, CO", "https://example.com/jobs/memorial-hospital", ""),
					study("Doctor of Medicine (MD)", "Johns Hopkins University", "Baltimore, MD", "https://example.com/study/johns-hopkins-medicine", ""),
				}),
		},
		Business: {
			entry(8, "Business Analyst",
				"Analyze business processes and systems to identify improvements and solutions.",
				"Your problem-solving abilities, attention to detail, and interest in how businesses operate make you well-suited for business analysis.",
				"BarChart2", career.Purple,
				[]career.Resource{
					res("LinkedIn Learning - Business Analysis", "https://www.linkedin.com/learning/topics/business-analysis", career.Course),
					res("International Institute of Business Analysis", "https://www.iiba.org/", career.Website),
					res("Tableau", "https://www.tableau.com/", career.Tool),
				},
				[]career.Opportunity{
					job("Junior Business Analyst", "Consulting Partners", "Chicago, IL", "https://example.com/jobs/consulting-partners", ""),
					study("MBA with Business Analytics", "University of Michigan", "Ann Arbor, MI", "https://example.com/study/umich-mba", ""),
				}),
			entry(9, "Project Manager",
				"Plan, execute, and close projects while ensuring they're completed on time and within budget.",
				"Your organizational skills, leadership abilities, and interest in coordinating people and resources align with project management.",
				"Trello", career.Teal,
				[]career.Resource{
					res("PMI - Project Management Institute", "https://www.pmi.org/", career.Website),
					res("Asana", "https://asana.com/", career.Tool),
					res("Coursera - Project Management", "https://www.coursera.org/professional-certificates/google-project-management", career.Course),
				},
				[]career.Opportunity{
					job("Project Coordinator", "Global Solutions Inc.", "Seattle, WA", "https://example.com/jobs/global-solutions", ""),
					study("MSc in Project Management", "Boston University", "Boston, MA", "https://example.com/study/bu-project-management", ""),
				}),
		},
	}
}
