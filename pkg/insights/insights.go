package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/forsakeprojects/partnur-backend/entity"
	"github.com/forsakeprojects/partnur-backend/pkg/profile"
)

// followUpQuestions 按画像字段给出的追问话术，顺序由 profile.Missing 决定
var followUpQuestions = map[string]string{
	"business_type":        "What kind of business do you run?",
	"location_city":        "Which city is your business in?",
	"location_state":       "Which state are you located in?",
	"monthly_revenue":      "Roughly how much does your business earn in a month?",
	"staff_count":          "How many people work with you?",
	"product_source":       "Where do you source your products or supplies from?",
	"pricing_strategy":     "How do you decide your prices?",
	"peak_hours":           "What are your busiest hours of the day?",
	"peak_days":            "Which days of the week are busiest for you?",
	"top_products":         "What are your best-selling products or services?",
	"staff_roles":          "What roles do your staff members handle?",
	"payment_methods":      "How do your customers usually pay you?",
	"advertising_channels": "Where do you currently advertise your business?",
	"platforms_used":       "Which apps or platforms do you use to run your business?",
	"past_campaigns":       "Have you run any promotions or campaigns before?",
	"business_goals":       "What do you want to achieve with your business this year?",
	"challenges":           "What is the biggest challenge in your business right now?",
}

// Suggestions 对未填写的高权重字段生成追问，最多 max 条
func Suggestions(p *entity.BusinessProfile, max int) []string {
	if max <= 0 {
		return nil
	}

	var out []string
	for _, spec := range profile.Missing(p) {
		question, ok := followUpQuestions[spec.Name]
		if !ok {
			continue
		}
		out = append(out, question)
		if len(out) >= max {
			break
		}
	}
	return out
}

// SeasonalTip 按月份返回一条给印度小商户的经营提示
func SeasonalTip(month time.Month) string {
	switch month {
	case time.January, time.February:
		return "Wedding season is in full swing. Bundle your products or services into ready-made packages for wedding customers."
	case time.March, time.April, time.May:
		return "Summer is here. Adjust stock and timings for the heat, and push evening slots or cooling products."
	case time.June, time.July, time.August, time.September:
		return "Monsoon usually slows walk-ins. Use the quiet weeks for maintenance, staff training and WhatsApp re-engagement."
	case time.October, time.November:
		return "Festive season is the biggest sales window of the year. Lock your offers and stock well before Diwali."
	default:
		return "Year-end and wedding rush ahead. Staff up for peak days and pre-book your repeat customers."
	}
}

// BusinessInsights 基于画像已知信息的规则化观察
func BusinessInsights(p *entity.BusinessProfile) []string {
	if p == nil {
		return nil
	}

	var out []string
	switch {
	case p.MonthlyRevenue <= 0:
	case p.MonthlyRevenue < 50000:
		out = append(out, "At your revenue level, low-cost channels like WhatsApp status and local word of mouth give the best return.")
	case p.MonthlyRevenue < 200000:
		out = append(out, "Your revenue can support a small fixed marketing budget. Even a few thousand rupees a month on local promotions compounds over time.")
	default:
		out = append(out, "With your revenue level, formal bookkeeping and a GST review are worth the effort if you have not done them recently.")
	}

	if p.MonthlyRevenue > 0 && p.StaffCount > 0 {
		if p.MonthlyRevenue/int64(p.StaffCount) < 15000 {
			out = append(out, "Revenue per staff member looks low. Check idle hours before adding more people.")
		}
	}

	if len(p.PaymentMethods) > 0 && !containsFold(p.PaymentMethods, "upi") {
		out = append(out, "Customers increasingly expect UPI. Accepting it usually lifts small-ticket sales.")
	}

	if len(p.AdvertisingChannels) == 1 {
		out = append(out, "You rely on a single advertising channel. Adding one more protects you from sudden reach drops.")
	}

	return out
}

// ContextualTips 根据消息里的关键词给出场景化建议，最多 max 条
func ContextualTips(message string, p *entity.BusinessProfile, max int) []string {
	if max <= 0 {
		return nil
	}

	msg := strings.ToLower(message)
	var out []string
	add := func(tip string) {
		if len(out) < max {
			out = append(out, tip)
		}
	}

	if containsAny(msg, "discount", "offer", "sale", "price") {
		add("Time-box discounts to 2-3 days and announce the end date. Open-ended offers train customers to wait.")
	}
	if containsAny(msg, "customer", "footfall", "marketing", "promote") {
		add("Ask happy customers for a review the same day. Referrals convert better than paid ads.")
	}
	if containsAny(msg, "online", "instagram", "whatsapp", "website", "social") {
		if p != nil && len(p.PlatformsUsed) > 0 {
			add("Post consistently 2-3 times a week. Regularity beats occasional bursts.")
		} else {
			add("Start with a WhatsApp Business profile. It is free and most of your customers are already there.")
		}
	}
	if containsAny(msg, "staff", "employee", "salary", "hire") {
		add("A written shift and incentive sheet avoids most staffing disputes.")
	}
	if containsAny(msg, "festival", "diwali", "season", "wedding") {
		add("Plan festive stock and offers 3-4 weeks in advance. Last-minute purchases squeeze your margin.")
	}

	return out
}

// Summary 把画像压成一行英文摘要，喂给顾问模型当上下文用
func Summary(p *entity.BusinessProfile) string {
	if p == nil {
		return ""
	}

	var parts []string
	if p.BusinessType != "" {
		parts = append(parts, "business: "+p.BusinessType)
	}
	if p.LocationCity != "" {
		location := p.LocationCity
		if p.LocationState != "" {
			location += ", " + p.LocationState
		}
		parts = append(parts, "location: "+location)
	}
	if p.MonthlyRevenue > 0 {
		parts = append(parts, fmt.Sprintf("monthly revenue: INR %d", p.MonthlyRevenue))
	}
	if p.StaffCount > 0 {
		parts = append(parts, fmt.Sprintf("staff: %d", p.StaffCount))
	}
	if p.PricingStrategy != "" {
		parts = append(parts, "pricing: "+p.PricingStrategy)
	}
	if len(p.TopProducts) > 0 {
		parts = append(parts, "top products: "+strings.Join(p.TopProducts, ", "))
	}
	if len(p.PaymentMethods) > 0 {
		parts = append(parts, "payments: "+strings.Join(p.PaymentMethods, ", "))
	}
	if len(p.BusinessGoals) > 0 {
		parts = append(parts, "goals: "+strings.Join(p.BusinessGoals, ", "))
	}
	if len(p.Challenges) > 0 {
		parts = append(parts, "challenges: "+strings.Join(p.Challenges, ", "))
	}

	return strings.Join(parts, "; ")
}

func containsAny(msg string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), target) {
			return true
		}
	}
	return false
}
