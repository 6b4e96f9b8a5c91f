package csvfeed

// A little flavor for each published message, carried over from the
// original feed. Consumers ignore the field.
var bbqFacts = []string{
	"The word 'barbecue' comes from the Taino word barbacoa, a wooden frame for cooking meat over flame.",
	"The first recorded BBQ in America was in 1540.",
	"George Washington's diary mentions attending a 'barbicue' in 1769.",
	"Texas BBQ grew out of German and Czech smoking techniques in the 1800s.",
	"Henry Perry, the 'father of Kansas City BBQ', sold slow-smoked meats from a cart in the early 1900s.",
	"The oldest BBQ joint in the U.S., Southside Market in Elgin, Texas, opened in 1882.",
	"Big Bob Gibson invented Alabama's mayo-based white sauce in 1925.",
	"The first BBQ restaurant in the U.S. opened in 1919.",
	"The famous BBQ 'bark' comes from the Maillard reaction.",
	"The world's largest BBQ pit, the 'Undisputable Cuz', is 76 feet long.",
	"NASA sent BBQ-flavored food on the Apollo missions.",
	"The oldest BBQ cookbook was published in 1748.",
	"BBQ competitions exploded in the 1980s with the rise of the Kansas City Barbeque Society.",
}
