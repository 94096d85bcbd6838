package advisor

import (
	"strings"
)

// Keyword sets for the fallback rules. Matching is case-insensitive over
// the raw message.
var (
	sellingKeywords = []string{"sell", "price", "market", "best time", "when", "weather"}
	weatherKeywords = []string{"weather", "rain", "season", "monsoon", "summer", "winter"}
	profitKeywords  = []string{"price", "rate", "market", "profit"}

	farmingKeywords     = []string{"plant", "grow", "farm", "crop", "seed", "soil", "fertilizer"}
	marketplaceKeywords = []string{"sell", "list", "buyer", "marketplace", "trade"}
	priceRefKeywords    = []string{"price", "rate", "cost", "expensive", "cheap"}
)

const weatherPriceTimingReply = `To decide when to sell your crop:

1. **Monitor Weather**: Check monsoon timings, rainfall patterns, and temperature forecasts. Good harvest weather = better quality = higher prices.

2. **Check Market Prices**: Use our Prices section to track commodity rates. Sell when prices are high.

3. **Timing Strategy**:
   - Wheat: Sell March-April for best prices
   - Rice: Peak prices June-July
   - Cotton: October-November highest demand
   - Vegetables: Post-harvest season (high demand, seasonal gluts)

4. **Use Kisan Mandi**: List your crops when prices are favorable and weather is stable.

Would you like specific advice for a particular crop?`

const weatherImpactReply = `**Weather & Crop Selling**:

Good weather conditions = Better crop quality = Higher market value

Check our Prices page to see current market rates and list your crops when conditions are optimal. Use the Marketplace to connect directly with buyers!`

const priceOptimizationReply = `**Getting Best Prices**:

1. Visit our Prices page to check current market rates
2. Harvest crops when market demand is high
3. List on our marketplace with your best price
4. Direct buyer connection = No middlemen cost

What crop are you planning to sell?`

const farmingAdviceReply = `**Farming & Crop Advice**:

For best results:

1. **Soil Preparation**: Test soil pH before planting
2. **Organic Methods**: Use natural fertilizers (compost, vermicompost)
3. **Water Management**: Proper irrigation based on weather and crop type
4. **Pest Control**: Use integrated pest management techniques
5. **Timing**: Plant according to your region's crop season

Which crop would you like guidance on? (Wheat, Rice, Cotton, etc.)`

const marketplaceGuideReply = `**Selling on Kisan Mandi Marketplace**:

1. **Create Listing**: Add crop details, quantity, quality grade
2. **Upload Photos**: Show your produce clearly
3. **Set Your Price**: You control pricing - no middlemen
4. **Connect with Buyers**: Buyers browse and contact directly
5. **Payment**: Secure payment through our platform

Ready to list your crops? Go to Marketplace -> Add New Listing!`

const priceReferenceReply = `**Current Market Prices**:

Visit our Prices page to see live commodity rates for:
- Wheat
- Rice
- Cotton
- Sugarcane
- Tomato
- And more!

Prices vary by location and season. Check regularly to time your sales optimally!`

const capabilityOverviewReply = `I'm your Kisan Mandi Agricultural Advisor! I can help you with:

**Selling Tips**: When & how to sell crops for best prices
**Farming Advice**: Crop growing, soil care, pest management
**Market Prices**: Current rates for all crops
**Marketplace Guide**: How to use our platform
**Weather Impact**: How weather affects crop price & quality

What would you like to know?`

type fallbackRule struct {
	match func(msg string) bool
	reply string
}

// fallbackRules is evaluated top to bottom; first match wins. The first
// three rules all require a hit in the selling set, so a message that
// matches the selling set but neither of its sub-sets falls through to
// the farming rule rather than returning a selling reply.
var fallbackRules = []fallbackRule{
	{
		match: func(msg string) bool {
			return containsAny(msg, sellingKeywords) &&
				containsAny(msg, weatherKeywords) &&
				containsAny(msg, profitKeywords)
		},
		reply: weatherPriceTimingReply,
	},
	{
		match: func(msg string) bool {
			return containsAny(msg, sellingKeywords) && containsAny(msg, weatherKeywords)
		},
		reply: weatherImpactReply,
	},
	{
		match: func(msg string) bool {
			return containsAny(msg, sellingKeywords) && containsAny(msg, profitKeywords)
		},
		reply: priceOptimizationReply,
	},
	{
		match: func(msg string) bool { return containsAny(msg, farmingKeywords) },
		reply: farmingAdviceReply,
	},
	{
		match: func(msg string) bool { return containsAny(msg, marketplaceKeywords) },
		reply: marketplaceGuideReply,
	},
	{
		match: func(msg string) bool { return containsAny(msg, priceRefKeywords) },
		reply: priceReferenceReply,
	},
}

func containsAny(msg string, words []string) bool {
	for _, word := range words {
		if strings.Contains(msg, word) {
			return true
		}
	}
	return false
}

// FallbackReply selects the canned reply for a message. Deterministic:
// the same message always yields the same bytes.
func FallbackReply(message string) string {
	msg := strings.ToLower(message)
	for _, rule := range fallbackRules {
		if rule.match(msg) {
			return rule.reply
		}
	}
	return capabilityOverviewReply
}
