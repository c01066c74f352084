package recommendation

// defaultCatalog is seeded into an empty catalog at startup.
var defaultCatalog = []seedEntry{
	// grief
	{
		Category:    "grief",
		Type:        "journaling",
		Title:       "Grief Journaling Exercise",
		Description: "Spend 10 minutes writing about a memory with your loved one. Focus on the emotions this memory brings up.",
		Link:        "/exercises/grief-journal",
	},
	{
		Category:    "grief",
		Type:        "exercise",
		Title:       "Breathing Technique: 4-7-8",
		Description: "Breathe in for 4 seconds, hold for 7 seconds, exhale for 8 seconds. Repeat 4 times.",
		Link:        "/exercises/breathing",
	},
	{
		Category:    "grief",
		Type:        "resource",
		Title:       "Grief Support Resources",
		Description: "Connecting with others who understand can help. Consider joining a support group.",
		Link:        "/resources/support-groups",
	},

	// stress
	{
		Category:    "stress",
		Type:        "meditation",
		Title:       "5-Minute Mindfulness Practice",
		Description: "Take 5 minutes to focus on your breath and notice physical sensations without judgment.",
		Link:        "/exercises/mindfulness",
	},
	{
		Category:    "stress",
		Type:        "exercise",
		Title:       "Progressive Muscle Relaxation",
		Description: "Tense and then release each muscle group to release physical tension.",
		Link:        "/exercises/muscle-relaxation",
	},
	{
		Category:    "stress",
		Type:        "journaling",
		Title:       "Stress Trigger Journal",
		Description: "Track what triggers your stress to identify patterns you can address.",
		Link:        "/exercises/stress-journal",
	},

	// loneliness
	{
		Category:    "loneliness",
		Type:        "strategy",
		Title:       "Social Connection Challenge",
		Description: "Reach out to one person today, even with a simple text message.",
		Link:        "/exercises/social-connection",
	},
	{
		Category:    "loneliness",
		Type:        "resource",
		Title:       "Community Volunteering",
		Description: "Helping others can reduce feelings of isolation while making a difference.",
		Link:        "/resources/volunteering",
	},
	{
		Category:    "loneliness",
		Type:        "strategy",
		Title:       "Digital Detox Evening",
		Description: "Replace social media scrolling with a book, hobby, or self-care activity to reduce comparison and feelings of isolation.",
		Link:        "/strategies/digital-detox",
	},

	// work
	{
		Category:    "work",
		Type:        "strategy",
		Title:       "Workday Boundaries",
		Description: "Set clear start and end times to your workday to prevent burnout.",
		Link:        "/strategies/work-boundaries",
	},
	{
		Category:    "work",
		Type:        "exercise",
		Title:       "Desk Stretches",
		Description: "Simple stretches you can do at your desk to release tension.",
		Link:        "/exercises/desk-stretches",
	},
	{
		Category:    "work",
		Type:        "strategy",
		Title:       "Priority Matrix",
		Description: "Organize tasks by urgency and importance to reduce feeling overwhelmed.",
		Link:        "/strategies/priority-matrix",
	},

	// achievement
	{
		Category:    "achievement",
		Type:        "journaling",
		Title:       "Achievement Journal",
		Description: "Document your accomplishments, big and small, to build confidence and motivation.",
		Link:        "/exercises/achievement-journal",
	},
	{
		Category:    "achievement",
		Type:        "strategy",
		Title:       "Next Level Goal Setting",
		Description: "Build on your success by setting a related goal that takes you to the next level.",
		Link:        "/strategies/goal-setting",
	},
	{
		Category:    "achievement",
		Type:        "exercise",
		Title:       "Celebration Ritual",
		Description: "Create a personal ritual to mark achievements and reinforce positive emotions.",
		Link:        "/exercises/celebration-ritual",
	},

	// gratitude
	{
		Category:    "gratitude",
		Type:        "journaling",
		Title:       "Three Good Things Practice",
		Description: "Write down three things you are grateful for each day, including why they happened and how they made you feel.",
		Link:        "/exercises/three-good-things",
	},
	{
		Category:    "gratitude",
		Type:        "exercise",
		Title:       "Gratitude Letter",
		Description: "Write a letter expressing thanks to someone who has positively impacted your life.",
		Link:        "/exercises/gratitude-letter",
	},
	{
		Category:    "gratitude",
		Type:        "exercise",
		Title:       "Savoring Walk",
		Description: "Take a 20-minute walk focusing exclusively on the positive aspects of your environment.",
		Link:        "/exercises/savoring-walk",
	},

	// creative
	{
		Category:    "creative",
		Type:        "exercise",
		Title:       "Creative Expression Session",
		Description: "Set aside 30 minutes for a creative activity with no expectations or judgment.",
		Link:        "/exercises/creative-expression",
	},
	{
		Category:    "creative",
		Type:        "strategy",
		Title:       "Idea Generation Technique",
		Description: "Try the \"SCAMPER\" method to spark new ideas: Substitute, Combine, Adapt, Modify, Put to another use, Eliminate, Reverse.",
		Link:        "/strategies/idea-generation",
	},

	// anger
	{
		Category:    "anger",
		Type:        "exercise",
		Title:       "Anger Cooling Technique",
		Description: "When anger arises, count to 10 while taking deep breaths before responding.",
		Link:        "/exercises/anger-cooling",
	},
	{
		Category:    "anger",
		Type:        "exercise",
		Title:       "Physical Release",
		Description: "Channel anger physically through exercise, like a brisk walk or punching a pillow.",
		Link:        "/exercises/physical-release",
	},
	{
		Category:    "anger",
		Type:        "journaling",
		Title:       "Anger Triggers Journal",
		Description: "Record what triggers your anger and identify patterns to develop better responses.",
		Link:        "/exercises/anger-journal",
	},

	// anxiety
	{
		Category:    "anxiety",
		Type:        "exercise",
		Title:       "5-4-3-2-1 Grounding Exercise",
		Description: "Focus on 5 things you can see, 4 things you can touch, 3 things you can hear, 2 things you can smell, and 1 thing you can taste.",
		Link:        "/exercises/grounding",
	},
	{
		Category:    "anxiety",
		Type:        "strategy",
		Title:       "Worry Time Technique",
		Description: "Schedule a dedicated 15-minute \"worry time\" each day to contain anxiety to a specific period.",
		Link:        "/strategies/worry-time",
	},
	{
		Category:    "anxiety",
		Type:        "meditation",
		Title:       "Body Scan Meditation",
		Description: "Practice a 10-minute body scan to release physical tension associated with anxiety.",
		Link:        "/exercises/body-scan",
	},

	// disappointment
	{
		Category:    "disappointment",
		Type:        "strategy",
		Title:       "Expectation Reset",
		Description: "Reflect on whether your expectations were realistic and adjust them for the future.",
		Link:        "/strategies/expectation-reset",
	},
	{
		Category:    "disappointment",
		Type:        "journaling",
		Title:       "Silver Linings Journal",
		Description: "Write about potential positive outcomes or lessons from the disappointing situation.",
		Link:        "/exercises/silver-linings",
	},

	// joy
	{
		Category:    "joy",
		Type:        "exercise",
		Title:       "Joy Collection",
		Description: "Create a physical or digital collection of things that bring you joy to revisit when needed.",
		Link:        "/exercises/joy-collection",
	},
	{
		Category:    "joy",
		Type:        "exercise",
		Title:       "Flow Activity",
		Description: "Engage in an activity that fully absorbs you and brings a sense of timelessness.",
		Link:        "/exercises/flow-activity",
	},
	{
		Category:    "joy",
		Type:        "strategy",
		Title:       "Joy Sharing",
		Description: "Share your positive experiences with others to amplify and extend feelings of joy.",
		Link:        "/strategies/joy-sharing",
	},

	// optimism
	{
		Category:    "optimism",
		Type:        "exercise",
		Title:       "Future Visualization",
		Description: "Spend 5 minutes visualizing a positive future in vivid detail.",
		Link:        "/exercises/future-visualization",
	},
	{
		Category:    "optimism",
		Type:        "strategy",
		Title:       "Optimistic Explanatory Style",
		Description: "Practice explaining events in ways that are temporary, specific, and external when negative, but permanent, pervasive, and personal when positive.",
		Link:        "/strategies/explanatory-style",
	},

	// confusion
	{
		Category:    "confusion",
		Type:        "exercise",
		Title:       "Mind Map Clarity Exercise",
		Description: "Create a mind map of your thoughts to organize them visually and find connections.",
		Link:        "/exercises/mind-mapping",
	},
	{
		Category:    "confusion",
		Type:        "strategy",
		Title:       "Question Refinement",
		Description: "Transform vague confusion into specific questions to make challenges more approachable.",
		Link:        "/strategies/question-refinement",
	},

	// transition
	{
		Category:    "transition",
		Type:        "exercise",
		Title:       "Transition Bridge Visualization",
		Description: "Visualize yourself walking across a bridge from your past to your future, acknowledging both what you are leaving behind and what lies ahead.",
		Link:        "/exercises/transition-bridge",
	},
	{
		Category:    "transition",
		Type:        "strategy",
		Title:       "One Small Step",
		Description: "Identify one small, manageable action you can take today to move forward in your transition.",
		Link:        "/strategies/small-steps",
	},

	// health
	{
		Category:    "health",
		Type:        "strategy",
		Title:       "Health Worry Containment",
		Description: "Limit health research to specific times and credible sources to reduce anxiety.",
		Link:        "/strategies/health-worry",
	},
	{
		Category:    "health",
		Type:        "exercise",
		Title:       "Gentle Movement Practice",
		Description: "Engage in 10 minutes of gentle movement like stretching or walking to reconnect with your body.",
		Link:        "/exercises/gentle-movement",
	},

	// relationship
	{
		Category:    "relationship",
		Type:        "exercise",
		Title:       "Active Listening Exercise",
		Description: "Practice listening without interrupting, then summarize what you heard before responding.",
		Link:        "/exercises/active-listening",
	},
	{
		Category:    "relationship",
		Type:        "journaling",
		Title:       "Needs and Boundaries Reflection",
		Description: "Reflect on your needs in relationships and identify boundaries that would help meet them.",
		Link:        "/exercises/needs-boundaries",
	},
	{
		Category:    "relationship",
		Type:        "exercise",
		Title:       "Appreciation Practice",
		Description: "Share one specific thing you appreciate about someone in your life.",
		Link:        "/exercises/appreciation",
	},

	// financial
	{
		Category:    "financial",
		Type:        "exercise",
		Title:       "Financial Values Clarification",
		Description: "Identify your core values and how they relate to your financial decisions.",
		Link:        "/exercises/financial-values",
	},
	{
		Category:    "financial",
		Type:        "strategy",
		Title:       "One Small Financial Action",
		Description: "Take one small action today to improve your financial situation or knowledge.",
		Link:        "/strategies/financial-action",
	},

	// general wellbeing
	{
		Category:    "general_wellbeing",
		Type:        "exercise",
		Title:       "Ten-Minute Walk",
		Description: "Step outside for ten minutes without your phone and notice five things you can see and hear.",
		Link:        "/exercises/mindful-walk",
	},
	{
		Category:    "general_wellbeing",
		Type:        "exercise",
		Title:       "Check In With Your Body",
		Description: "Scan from head to toe and name one spot that feels tense and one that feels at ease.",
		Link:        "/exercises/body-scan",
	},
	{
		Category:    "general_wellbeing",
		Type:        "strategy",
		Title:       "Reach Out to Someone",
		Description: "Send a short message to a friend or family member you have not talked to this week.",
	},
	{
		Category:    "general_wellbeing",
		Type:        "strategy",
		Title:       "Wind-Down Routine",
		Description: "Pick a fixed time tonight to put screens away and do something calm for 30 minutes before bed.",
		Link:        "/resources/sleep-hygiene",
	},
	{
		Category:    "general_wellbeing",
		Type:        "journaling",
		Title:       "Three Good Things",
		Description: "Write down three things that went well today and what part you played in them.",
		Link:        "/exercises/three-good-things",
	},
	{
		Category:    "general_wellbeing",
		Type:        "resource",
		Title:       "Talk to a Professional",
		Description: "If low moods keep returning, a counselor or therapist can help. Find support options near you.",
		Link:        "/resources/professional-support",
	},
}
