package models

// ach builds a catalog row. PointValue 0 means "derive from difficulty".
func ach(id uint, name string, cat AchievementCategory, diff AchievementDifficulty, criteria string) Achievement {
	return Achievement{ID: id, Name: name, Category: cat, Difficulty: diff, Criteria: criteria}
}

// AchievementCatalog is the static unlock catalog, seeded at boot. Criteria
// is the numeric threshold against the category's counter; Focus rows with a
// "minutes:" prefix count total focus minutes instead of sessions, and
// Planner rows with a "smart:" prefix count smart-schedule usage instead of
// scheduled events. Seasonal criteria are "<month>: <count>".
var AchievementCatalog = []Achievement{
	// Progress — tasks completed
	ach(101, "First Steps", CategoryProgress, DifficultyBronze, "1"),
	ach(102, "Warming Up", CategoryProgress, DifficultyBronze, "3"),
	ach(103, "Getting Started", CategoryProgress, DifficultyBronze, "5"),
	ach(104, "Task Apprentice", CategoryProgress, DifficultyBronze, "10"),
	ach(105, "Steady Hand", CategoryProgress, DifficultyBronze, "25"),
	ach(106, "Thirty Five Done", CategoryProgress, DifficultySilver, "35"),
	ach(107, "Task Journeyman", CategoryProgress, DifficultySilver, "50"),
	ach(108, "Productivity Climber", CategoryProgress, DifficultySilver, "75"),
	ach(109, "Century Club", CategoryProgress, DifficultySilver, "100"),
	ach(110, "Momentum Keeper", CategoryProgress, DifficultyGold, "125"),
	ach(111, "Task Veteran", CategoryProgress, DifficultyGold, "150"),
	ach(112, "Double Century", CategoryProgress, DifficultyGold, "200"),
	ach(113, "Task Machine", CategoryProgress, DifficultyGold, "250"),
	ach(114, "Relentless", CategoryProgress, DifficultyPlatinum, "300"),
	ach(115, "Four Hundred Strong", CategoryProgress, DifficultyPlatinum, "400"),
	ach(116, "Half Thousand", CategoryProgress, DifficultyPlatinum, "500"),
	ach(117, "Task Conqueror", CategoryProgress, DifficultyDiamond, "750"),
	ach(118, "Task Legend", CategoryProgress, DifficultyDiamond, "1000"),
	ach(119, "Immortal Finisher", CategoryProgress, DifficultyOnyx, "2000"),
	ach(120, "Mythic Finisher", CategoryProgress, DifficultyOnyx, "5000"),

	// Creation — tasks created
	ach(121, "Planner", CategoryCreation, DifficultyBronze, "1"),
	ach(122, "Second Thought", CategoryCreation, DifficultyBronze, "3"),
	ach(123, "List Builder", CategoryCreation, DifficultyBronze, "5"),
	ach(124, "Idea Collector", CategoryCreation, DifficultyBronze, "10"),
	ach(125, "Fifteen Ideas", CategoryCreation, DifficultySilver, "15"),
	ach(126, "Backlog Keeper", CategoryCreation, DifficultySilver, "25"),
	ach(127, "Prolific Planner", CategoryCreation, DifficultySilver, "50"),
	ach(128, "Overflowing List", CategoryCreation, DifficultySilver, "75"),
	ach(129, "Hundred Plans", CategoryCreation, DifficultyGold, "100"),
	ach(130, "Grand Architect", CategoryCreation, DifficultyGold, "200"),
	ach(131, "Master Architect", CategoryCreation, DifficultyPlatinum, "350"),
	ach(132, "Visionary", CategoryCreation, DifficultyDiamond, "500"),
	ach(133, "Endless Visionary", CategoryCreation, DifficultyOnyx, "1000"),

	// Organizer — categories created
	ach(141, "Sorter", CategoryOrganizer, DifficultyBronze, "1"),
	ach(142, "Two Buckets", CategoryOrganizer, DifficultyBronze, "2"),
	ach(143, "Tidy Mind", CategoryOrganizer, DifficultyBronze, "3"),
	ach(144, "Filing Clerk", CategoryOrganizer, DifficultySilver, "5"),
	ach(145, "Lucky Seven", CategoryOrganizer, DifficultySilver, "7"),
	ach(146, "Taxonomist", CategoryOrganizer, DifficultySilver, "10"),
	ach(147, "Category Curator", CategoryOrganizer, DifficultyGold, "15"),
	ach(148, "Order From Chaos", CategoryOrganizer, DifficultyGold, "20"),
	ach(149, "Shelf Master", CategoryOrganizer, DifficultyPlatinum, "25"),
	ach(150, "Grand Librarian", CategoryOrganizer, DifficultyPlatinum, "30"),

	// Tagging — tags used
	ach(151, "First Label", CategoryTagging, DifficultyBronze, "1"),
	ach(152, "Three Marks", CategoryTagging, DifficultyBronze, "3"),
	ach(153, "Tag Dabbler", CategoryTagging, DifficultyBronze, "5"),
	ach(154, "Tag Enthusiast", CategoryTagging, DifficultySilver, "10"),
	ach(155, "Fifteen Flags", CategoryTagging, DifficultySilver, "15"),
	ach(156, "Tag Collector", CategoryTagging, DifficultySilver, "25"),
	ach(157, "Tag Wrangler", CategoryTagging, DifficultyGold, "50"),
	ach(158, "Seventy Five Tags", CategoryTagging, DifficultyGold, "75"),
	ach(159, "Tag Master", CategoryTagging, DifficultyPlatinum, "100"),
	ach(160, "Tag Sage", CategoryTagging, DifficultyDiamond, "200"),

	// Streak — consecutive active days
	ach(161, "Three In A Row", CategoryStreak, DifficultyBronze, "3"),
	ach(162, "High Five", CategoryStreak, DifficultyBronze, "5"),
	ach(163, "One Week Wonder", CategoryStreak, DifficultyBronze, "7"),
	ach(164, "Ten Day Run", CategoryStreak, DifficultyBronze, "10"),
	ach(165, "Fortnight Fighter", CategoryStreak, DifficultySilver, "14"),
	ach(166, "Three Week Habit", CategoryStreak, DifficultySilver, "21"),
	ach(167, "Monthly Devotion", CategoryStreak, DifficultyGold, "30"),
	ach(168, "Six Week Surge", CategoryStreak, DifficultyGold, "45"),
	ach(169, "Fifty Day Flame", CategoryStreak, DifficultyGold, "50"),
	ach(170, "Two Month Titan", CategoryStreak, DifficultyGold, "60"),
	ach(171, "Seventy Five Fire", CategoryStreak, DifficultyPlatinum, "75"),
	ach(172, "Quarter Master", CategoryStreak, DifficultyPlatinum, "90"),
	ach(173, "Hundred Day Heat", CategoryStreak, DifficultyPlatinum, "100"),
	ach(174, "Hundred Fifty Streak", CategoryStreak, DifficultyDiamond, "150"),
	ach(175, "Half Year Hero", CategoryStreak, DifficultyDiamond, "180"),
	ach(176, "Nine Month March", CategoryStreak, DifficultyDiamond, "270"),
	ach(177, "Year of Fire", CategoryStreak, DifficultyOnyx, "365"),

	// Focus — sessions completed, plus "minutes:" rows for total focus time
	ach(181, "First Focus", CategoryFocus, DifficultyBronze, "1"),
	ach(182, "Back For More", CategoryFocus, DifficultyBronze, "3"),
	ach(183, "Focus Five", CategoryFocus, DifficultyBronze, "5"),
	ach(184, "Deep Breather", CategoryFocus, DifficultyBronze, "10"),
	ach(185, "Fifteen Sessions", CategoryFocus, DifficultySilver, "15"),
	ach(186, "Focused Mind", CategoryFocus, DifficultySilver, "25"),
	ach(187, "Concentration Keeper", CategoryFocus, DifficultySilver, "50"),
	ach(188, "Seventy Five Sessions", CategoryFocus, DifficultyGold, "75"),
	ach(189, "Focus Centurion", CategoryFocus, DifficultyGold, "100"),
	ach(190, "Attention Athlete", CategoryFocus, DifficultyGold, "150"),
	ach(191, "Flow State", CategoryFocus, DifficultyPlatinum, "200"),
	ach(192, "Focus Devotee", CategoryFocus, DifficultyDiamond, "300"),
	ach(193, "Monk Mode", CategoryFocus, DifficultyOnyx, "500"),
	ach(194, "First Hour", CategoryFocus, DifficultyBronze, "minutes: 60"),
	ach(195, "Deep Work Day", CategoryFocus, DifficultySilver, "minutes: 480"),
	ach(196, "Thousand Minute Mind", CategoryFocus, DifficultyGold, "minutes: 1000"),
	ach(197, "Deep Work Week", CategoryFocus, DifficultyGold, "minutes: 2400"),
	ach(198, "Ten Thousand Minutes", CategoryFocus, DifficultyDiamond, "minutes: 10000"),
	ach(199, "Time Lord", CategoryFocus, DifficultyOnyx, "minutes: 50000"),

	// Level — level reached
	ach(201, "Level Up", CategoryLevel, DifficultyBronze, "2"),
	ach(202, "Finding Footing", CategoryLevel, DifficultyBronze, "3"),
	ach(203, "Fourth Floor", CategoryLevel, DifficultyBronze, "4"),
	ach(204, "Rising Star", CategoryLevel, DifficultyBronze, "5"),
	ach(205, "Lucky Seventh", CategoryLevel, DifficultyBronze, "7"),
	ach(206, "Double Digits", CategoryLevel, DifficultySilver, "10"),
	ach(207, "Twelve Rungs", CategoryLevel, DifficultySilver, "12"),
	ach(208, "Fifteen Strong", CategoryLevel, DifficultySilver, "15"),
	ach(209, "Twenty Club", CategoryLevel, DifficultySilver, "20"),
	ach(210, "Quarter Century", CategoryLevel, DifficultyGold, "25"),
	ach(211, "Thirty Something", CategoryLevel, DifficultyGold, "30"),
	ach(212, "Thirty Five High", CategoryLevel, DifficultyGold, "35"),
	ach(213, "Level Forty", CategoryLevel, DifficultyPlatinum, "40"),
	ach(214, "Halfway to Glory", CategoryLevel, DifficultyPlatinum, "50"),
	ach(215, "Sixty Summit", CategoryLevel, DifficultyDiamond, "60"),
	ach(216, "Seventy Five Peak", CategoryLevel, DifficultyDiamond, "75"),
	ach(217, "Centurion", CategoryLevel, DifficultyOnyx, "100"),

	// Points — lifetime points earned
	ach(221, "Pocket Change", CategoryPoints, DifficultyBronze, "100"),
	ach(222, "Small Stash", CategoryPoints, DifficultyBronze, "250"),
	ach(223, "Saving Up", CategoryPoints, DifficultyBronze, "500"),
	ach(224, "Three Quarters", CategoryPoints, DifficultySilver, "750"),
	ach(225, "First Thousand", CategoryPoints, DifficultySilver, "1000"),
	ach(226, "Nest Egg", CategoryPoints, DifficultySilver, "2500"),
	ach(227, "Five Grand", CategoryPoints, DifficultyGold, "5000"),
	ach(228, "Lucky Sevens", CategoryPoints, DifficultyGold, "7500"),
	ach(229, "Point Magnate", CategoryPoints, DifficultyGold, "10000"),
	ach(230, "Fifteen Thousand", CategoryPoints, DifficultyPlatinum, "15000"),
	ach(231, "Point Tycoon", CategoryPoints, DifficultyPlatinum, "25000"),
	ach(232, "Point Baron", CategoryPoints, DifficultyDiamond, "50000"),
	ach(233, "Point Emperor", CategoryPoints, DifficultyOnyx, "100000"),

	// Family — families joined
	ach(241, "Better Together", CategoryFamily, DifficultyBronze, "1"),
	ach(242, "Two Households", CategoryFamily, DifficultySilver, "2"),
	ach(243, "Village Builder", CategoryFamily, DifficultyGold, "3"),
	ach(244, "Clan Collector", CategoryFamily, DifficultyPlatinum, "5"),

	// Challenge — challenges completed
	ach(251, "Challenger", CategoryChallenge, DifficultyBronze, "1"),
	ach(252, "Double Down", CategoryChallenge, DifficultyBronze, "2"),
	ach(253, "Triple Threat", CategoryChallenge, DifficultySilver, "3"),
	ach(254, "Challenge Seeker", CategoryChallenge, DifficultySilver, "5"),
	ach(255, "Challenge Hunter", CategoryChallenge, DifficultyGold, "10"),
	ach(256, "Fifteen Trophies", CategoryChallenge, DifficultyGold, "15"),
	ach(257, "Challenge Conqueror", CategoryChallenge, DifficultyPlatinum, "25"),
	ach(258, "Challenge Legend", CategoryChallenge, DifficultyDiamond, "50"),

	// Login — daily logins claimed
	ach(261, "Hello World", CategoryLogin, DifficultyBronze, "1"),
	ach(262, "Three Visits", CategoryLogin, DifficultyBronze, "3"),
	ach(263, "Regular Visitor", CategoryLogin, DifficultyBronze, "7"),
	ach(264, "Two Week Regular", CategoryLogin, DifficultySilver, "14"),
	ach(265, "Loyal User", CategoryLogin, DifficultySilver, "30"),
	ach(266, "Forty Five Days", CategoryLogin, DifficultyGold, "45"),
	ach(267, "Devoted User", CategoryLogin, DifficultyGold, "60"),
	ach(268, "Ninety Greetings", CategoryLogin, DifficultyGold, "90"),
	ach(269, "Hundred Hellos", CategoryLogin, DifficultyPlatinum, "100"),
	ach(270, "Year Round Resident", CategoryLogin, DifficultyDiamond, "365"),

	// Planner — events scheduled, plus "smart:" rows for smart scheduling
	ach(271, "First Booking", CategoryPlanner, DifficultyBronze, "1"),
	ach(272, "Calendar Curious", CategoryPlanner, DifficultyBronze, "5"),
	ach(273, "Schedule Keeper", CategoryPlanner, DifficultySilver, "10"),
	ach(274, "Agenda Ace", CategoryPlanner, DifficultySilver, "25"),
	ach(275, "Calendar Commander", CategoryPlanner, DifficultyGold, "50"),
	ach(276, "Master of Time", CategoryPlanner, DifficultyPlatinum, "100"),
	ach(277, "Smart Start", CategoryPlanner, DifficultyBronze, "smart: 1"),
	ach(278, "Optimized Five", CategoryPlanner, DifficultySilver, "smart: 5"),
	ach(279, "Efficiency Expert", CategoryPlanner, DifficultyGold, "smart: 10"),
	ach(280, "Automation Adept", CategoryPlanner, DifficultyPlatinum, "smart: 25"),
	ach(281, "Scheduling Savant", CategoryPlanner, DifficultyDiamond, "smart: 50"),

	// Milestone — distinct days with any activity
	ach(291, "Day One", CategoryMilestone, DifficultyBronze, "1"),
	ach(292, "First Week In", CategoryMilestone, DifficultyBronze, "7"),
	ach(293, "Two Weeks In", CategoryMilestone, DifficultyBronze, "14"),
	ach(294, "A Month of Days", CategoryMilestone, DifficultySilver, "30"),
	ach(295, "Sixty Days Active", CategoryMilestone, DifficultySilver, "60"),
	ach(296, "Ninety Day Mark", CategoryMilestone, DifficultyGold, "90"),
	ach(297, "Half Year of Days", CategoryMilestone, DifficultyGold, "180"),
	ach(298, "Year of Days", CategoryMilestone, DifficultyPlatinum, "365"),
	ach(299, "Five Hundred Days", CategoryMilestone, DifficultyDiamond, "500"),
	ach(300, "Two Year Tenure", CategoryMilestone, DifficultyOnyx, "730"),

	// Seasonal — tasks completed within the named month
	ach(311, "New Year New Me", CategorySeasonal, DifficultySilver, "january: 10"),
	ach(312, "Heart of Winter", CategorySeasonal, DifficultySilver, "february: 10"),
	ach(313, "March Forward", CategorySeasonal, DifficultySilver, "march: 10"),
	ach(314, "Spring Cleaning", CategorySeasonal, DifficultySilver, "april: 15"),
	ach(315, "May Momentum", CategorySeasonal, DifficultySilver, "may: 15"),
	ach(316, "June Journey", CategorySeasonal, DifficultySilver, "june: 15"),
	ach(317, "Summer Surge", CategorySeasonal, DifficultyGold, "july: 20"),
	ach(318, "August Achiever", CategorySeasonal, DifficultyGold, "august: 20"),
	ach(319, "September Sprint", CategorySeasonal, DifficultyGold, "september: 20"),
	ach(320, "Harvest of Habits", CategorySeasonal, DifficultyGold, "october: 25"),
	ach(321, "November Drive", CategorySeasonal, DifficultyGold, "november: 25"),
	ach(322, "Strong Finish", CategorySeasonal, DifficultyPlatinum, "december: 25"),
}
