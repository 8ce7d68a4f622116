package core

import (
	"slices"

	"github.com/huangsam/clio/schema"
)

// Weight of the catalog items. The last few items come from the diversion block of the paper form.
const (
	standardWeight  = 4
	diversionWeight = 7
)

// question builds a catalog item with the standard answer set.
func question(id, text string, subscale schema.SubscaleKey, weight int) schema.Question {
	return schema.Question{
		ID:       id,
		Text:     text,
		Options:  slices.Clone(schema.AllLabels),
		Subscale: subscale,
		Weight:   weight,
	}
}

// questionCatalog is the canonical questionnaire, one item per subscale.
var questionCatalog = []schema.Question{
	question("q1", "I talk to others to find out what they would do if they had the same problem.", schema.SocialSupport, standardWeight),
	question("q2", "I dedicate myself to solving the problem using all my capabilities.", schema.ProblemSolving, standardWeight),
	question("q3", "I strive to succeed in the things I'm doing.", schema.StrivingSuccess, standardWeight),
	question("q4", "I worry about what is happening.", schema.Worrying, standardWeight),
	question("q5", "I consciously decide to ignore the problem.", schema.IgnoreProblem, standardWeight),
	question("q6", "I find a way to relax, such as listening to music, reading, or watching TV.", schema.TensionReduction, standardWeight),
	question("q7", "I tend to blame myself when things go wrong.", schema.SelfBlame, standardWeight),
	question("q8", "I focus on enjoyable activities or having fun to feel better.", schema.RelaxingDiversions, diversionWeight),
	question("q9", "I try to see the good side of things and focus on positive thoughts.", schema.PositiveFocus, diversionWeight),
	question("q10", "I hope for a positive outcome and believe everything will work out in the end.", schema.BuildHopes, diversionWeight),
	question("q11", "I keep my feelings to myself and don't let others know how I feel.", schema.KeepToSelf, standardWeight),
	question("q12", "I feel I have no way of dealing with the situation.", schema.LackCoping, standardWeight),
	question("q13", "I try to fit in with the people around me.", schema.SeekBelonging, standardWeight),
	question("q14", "I spend more time with close friends.", schema.InvestFriends, standardWeight),
	question("q15", "I pray or look for spiritual guidance.", schema.SpiritualSupport, standardWeight),
	question("q16", "I ask a professional, such as a counselor or teacher, for advice.", schema.ProfessionalHelp, standardWeight),
	question("q17", "I join with others to do something about the problem.", schema.SocialAction, standardWeight),
	question("q18", "I keep fit and healthy through exercise or sport.", schema.PhysicalRecreation, standardWeight),
}

// archetypeCatalog lists the archetypes in tie-break priority order.
// Each subscale feeds at most one archetype so that no answer raises two opposing styles.
// Social subscales are not referenced by any archetype and stay informational.
var archetypeCatalog = []schema.Archetype{
	{
		Key:         schema.Autonomous,
		Name:        "Autonomous",
		Description: "You seek to solve problems quickly through your skills, but might struggle with stress or asking for help.",
		Recommendations: []string{
			"Practice active listening and empathetic communication",
			"Set realistic goals and maintain work-life balance",
			"Develop stress management techniques",
			"Learn to delegate and collaborate effectively",
		},
		Subscales: []schema.SubscaleKey{schema.ProblemSolving, schema.StrivingSuccess, schema.PositiveFocus, schema.PhysicalRecreation},
	},
	{
		Key:         schema.Impulsive,
		Name:        "Impulsive",
		Description: "You may struggle with self-doubt and emotional expression, potentially experiencing challenges in managing emotions effectively.",
		Recommendations: []string{
			"Develop anger management skills",
			"Build frustration tolerance",
			"Practice mindfulness techniques",
			"Focus on accountability without blame",
			"Promote balanced self-perception",
		},
		Subscales: []schema.SubscaleKey{schema.Worrying, schema.SelfBlame, schema.TensionReduction, schema.LackCoping},
	},
	{
		Key:         schema.Avoidant,
		Name:        "Avoidant",
		Description: "You enjoy leisure but may struggle with decision-making if it conflicts with the group consensus.",
		Recommendations: []string{
			"Encourage active listening",
			"Practice problem-solving from different perspectives",
		},
		Subscales: []schema.SubscaleKey{schema.IgnoreProblem, schema.RelaxingDiversions, schema.BuildHopes},
	},
	{
		Key:         schema.Isolative,
		Name:        "Isolative",
		Description: "You prefer independence and may struggle with vulnerability in social contexts.",
		Recommendations: []string{
			"Gradually build trusted support networks",
			"Balance solitude with social interaction",
			"Practice sharing thoughts and feelings",
			"Explore group activities aligned with your interests",
		},
		Subscales: []schema.SubscaleKey{schema.KeepToSelf, schema.SpiritualSupport},
	},
}
