package data

import "github.com/evidence-navigator-server/internal/domain"

// Guidelines is the registry of national clinical practice guidelines
var Guidelines = []domain.Guideline{
	{
		ID:       "gl-stroke-2021",
		Title:    "脳卒中治療ガイドライン2021",
		TitleEn:  "Japanese Guidelines for the Management of Stroke 2021",
		Org:      "日本脳卒中学会",
		URL:      "https://www.jsts.gr.jp/guideline/",
		Cat:      "neurology",
		Country:  "JP",
		Year:     2021,
		Diseases: []string{"脳卒中", "脳梗塞", "脳出血", "くも膜下出血", "stroke", "cerebral infarction"},
	},
	{
		ID:       "gl-stroke-rehab-2023",
		Title:    "脳卒中リハビリテーション医療ガイドライン",
		TitleEn:  "Clinical Practice Guideline for Stroke Rehabilitation",
		Org:      "日本リハビリテーション医学会",
		URL:      "https://www.jarm.or.jp/guideline/",
		Cat:      "rehabilitation",
		Country:  "JP",
		Year:     2023,
		Diseases: []string{"脳卒中", "リハビリテーション", "stroke", "rehabilitation", "片麻痺"},
	},
	{
		ID:       "gl-knee-oa-2023",
		Title:    "変形性膝関節症診療ガイドライン2023",
		TitleEn:  "Clinical Practice Guideline for Knee Osteoarthritis 2023",
		Org:      "日本整形外科学会",
		URL:      "https://www.joa.or.jp/public/guideline/",
		Cat:      "orthopedics",
		Country:  "JP",
		Year:     2023,
		Diseases: []string{"変形性膝関節症", "knee osteoarthritis", "膝OA", "膝関節痛"},
	},
	{
		ID:       "gl-hip-fracture-2021",
		Title:    "大腿骨頚部/転子部骨折診療ガイドライン",
		TitleEn:  "Clinical Practice Guideline for Femoral Neck and Trochanteric Fractures",
		Org:      "日本整形外科学会",
		URL:      "https://www.joa.or.jp/public/guideline/",
		Cat:      "orthopedics",
		Country:  "JP",
		Year:     2021,
		Diseases: []string{"大腿骨近位部骨折", "大腿骨頸部骨折", "hip fracture", "転倒"},
	},
	{
		ID:       "gl-heart-failure-2025",
		Title:    "心不全診療ガイドライン",
		TitleEn:  "Guideline on Diagnosis and Treatment of Heart Failure",
		Org:      "日本循環器学会",
		URL:      "https://www.j-circ.or.jp/guideline/",
		Cat:      "cardiology",
		Country:  "JP",
		Year:     2025,
		Diseases: []string{"心不全", "heart failure", "心臓リハビリテーション"},
	},
	{
		ID:       "gl-dysphagia-2018",
		Title:    "摂食嚥下障害の評価と訓練に関する指針",
		TitleEn:  "Guideline on Evaluation and Training for Dysphagia",
		Org:      "日本摂食嚥下リハビリテーション学会",
		URL:      "https://www.jsdr.or.jp/guideline/",
		Cat:      "rehabilitation",
		Country:  "JP",
		Year:     2018,
		Diseases: []string{"嚥下障害", "摂食嚥下障害", "dysphagia", "誤嚥性肺炎"},
	},
	{
		ID:       "gl-sarcopenia-2017",
		Title:    "サルコペニア診療ガイドライン2017",
		TitleEn:  "Clinical Practice Guideline for Sarcopenia 2017",
		Org:      "日本サルコペニア・フレイル学会",
		URL:      "https://jssf.umin.jp/clinical_guide.html",
		Cat:      "geriatrics",
		Country:  "JP",
		Year:     2017,
		Diseases: []string{"サルコペニア", "sarcopenia", "フレイル", "frailty", "低栄養"},
	},
	{
		ID:       "gl-copd-2022",
		Title:    "COPD診断と治療のためのガイドライン第6版",
		TitleEn:  "Guideline for Diagnosis and Treatment of COPD, 6th edition",
		Org:      "日本呼吸器学会",
		URL:      "https://www.jrs.or.jp/publication/",
		Cat:      "pulmonology",
		Country:  "JP",
		Year:     2022,
		Diseases: []string{"慢性閉塞性肺疾患", "COPD", "呼吸リハビリテーション"},
	},
	{
		ID:       "gl-low-back-pain-2019",
		Title:    "腰痛診療ガイドライン2019",
		TitleEn:  "Clinical Practice Guideline for Low Back Pain 2019",
		Org:      "日本整形外科学会",
		URL:      "https://www.joa.or.jp/public/guideline/",
		Cat:      "orthopedics",
		Country:  "JP",
		Year:     2019,
		Diseases: []string{"腰痛", "腰痛症", "low back pain", "慢性疼痛"},
	},
	{
		ID:       "gl-parkinson-2018",
		Title:    "パーキンソン病診療ガイドライン2018",
		TitleEn:  "Clinical Practice Guideline for Parkinson Disease 2018",
		Org:      "日本神経学会",
		URL:      "https://www.neurology-jp.org/guidelinem/",
		Cat:      "neurology",
		Country:  "JP",
		Year:     2018,
		Diseases: []string{"パーキンソン病", "Parkinson disease", "歩行障害", "振戦"},
	},
}

// GuidelineByID returns a guideline by id, or nil
func GuidelineByID(id string) *domain.Guideline {
	for i := range Guidelines {
		if Guidelines[i].ID == id {
			return &Guidelines[i]
		}
	}
	return nil
}
