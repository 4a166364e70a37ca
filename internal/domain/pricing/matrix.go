package pricing

func usd(dollars int64) int64 { return dollars * 100 }

func tier(price, savings int64) Tier {
	return Tier{Price: usd(price), Savings: usd(savings)}
}

var table = map[MembershipType]map[Duration]map[AccessTime]Tier{
	Single: {
		Monthly:     {AllDay: tier(60, 0), Peak: tier(45, 15), OffPeak: tier(35, 25)},
		SixMonths:   {AllDay: tier(300, 60), Peak: tier(225, 45), OffPeak: tier(175, 35)},
		TwelveMonth: {AllDay: tier(540, 180), Peak: tier(405, 135), OffPeak: tier(315, 105)},
	},
	Couple: {
		Monthly:     {AllDay: tier(100, 20), Peak: tier(75, 15), OffPeak: tier(60, 10)},
		SixMonths:   {AllDay: tier(500, 100), Peak: tier(375, 75), OffPeak: tier(300, 60)},
		TwelveMonth: {AllDay: tier(900, 240), Peak: tier(675, 180), OffPeak: tier(540, 120)},
	},
	Family: {
		Monthly:     {AllDay: tier(140, 40), Peak: tier(105, 30), OffPeak: tier(85, 20)},
		SixMonths:   {AllDay: tier(700, 140), Peak: tier(525, 105), OffPeak: tier(425, 85)},
		TwelveMonth: {AllDay: tier(1260, 420), Peak: tier(945, 315), OffPeak: tier(765, 255)},
	},
}

var faq = []FAQEntry{
	{
		Question: "How does the guest privilege work?",
		Answer:   "With our 6-month membership, you can bring up to 4 different guests throughout your membership period. With our 12-month membership, you can bring up to 8 different guests. Each guest can visit once, and you must accompany them during their visit.",
	},
	{
		Question: "Can I pause my membership?",
		Answer:   "Yes! Our 6-month members can pause their membership for up to 1 month, and our 12-month members can pause for up to 2 months. This is perfect for situations like pregnancy, extended travel, or recovery from illness or injury. Simply notify us in advance to activate your pause period.",
	},
	{
		Question: "How does the referral program work?",
		Answer:   "When you refer a friend who signs up for any membership, you'll receive a 20% discount on your next renewal. There's no limit to how many friends you can refer, so you could potentially get multiple renewal discounts!",
	},
	{
		Question: "What's included in the family membership?",
		Answer:   "Our family membership includes access for 2 adults and up to 3 children (under 18) living in the same household. Each family member gets their own access card and full use of the facilities during the selected hours.",
	},
	{
		Question: "Can I upgrade my membership mid-term?",
		Answer:   "You can upgrade your membership at any time. We'll simply prorate the difference and apply it to your new membership level. Contact our front desk staff to process your upgrade.",
	},
}

// FAQ returns the pricing questions in display order
func FAQ() []FAQEntry {
	out := make([]FAQEntry, len(faq))
	copy(out, faq)
	return out
}
