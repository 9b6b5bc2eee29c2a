package data

import "github.com/evidence-navigator-server/internal/domain"

// ClinicalQuestions is the registry of CQ units extracted from the
// national guidelines
var ClinicalQuestions = []domain.ClinicalQuestion{
	{
		GID:  "gl-stroke-rehab-2023",
		CQ:   "CQ1",
		Q:    "脳卒中患者に対して発症早期からのリハビリテーションは推奨されるか",
		Type: "treatment",
		Rec:  "発症後早期からの離床と訓練開始を弱く推奨する",
		Ev:   "rct",
		Page: "24",
		KW:   []string{"脳卒中", "早期離床", "リハビリテーション", "early mobilization"},
	},
	{
		GID:  "gl-stroke-rehab-2023",
		CQ:   "CQ5",
		Q:    "歩行障害を有する脳卒中患者にトレッドミル訓練は有効か",
		Type: "treatment",
		Rec:  "歩行可能な患者への部分免荷トレッドミル訓練を弱く推奨する",
		Ev:   "sr_ma",
		Page: "58",
		KW:   []string{"脳卒中", "歩行", "トレッドミル", "treadmill training"},
	},
	{
		GID:  "gl-stroke-rehab-2023",
		CQ:   "CQ12",
		Q:    "上肢麻痺に対するCI療法は機能回復に有効か",
		Type: "treatment",
		Rec:  "適応のある患者へのCI療法を強く推奨する",
		Ev:   "sr_ma",
		Page: "96",
		KW:   []string{"脳卒中", "上肢麻痺", "CI療法", "constraint-induced movement therapy"},
	},
	{
		GID:  "gl-stroke-2021",
		CQ:   "CQ3",
		Q:    "急性期脳梗塞に対する血栓回収療法はどのような患者に推奨されるか",
		Type: "treatment",
		Rec:  "主幹動脈閉塞を有する患者への機械的血栓回収療法を強く推奨する",
		Ev:   "rct",
		Page: "112",
		KW:   []string{"脳梗塞", "血栓回収療法", "mechanical thrombectomy"},
	},
	{
		GID:  "gl-knee-oa-2023",
		CQ:   "CQ2",
		Q:    "変形性膝関節症患者に運動療法は推奨されるか",
		Type: "treatment",
		Rec:  "大腿四頭筋筋力増強を中心とした運動療法を強く推奨する",
		Ev:   "sr_ma",
		Page: "41",
		KW:   []string{"変形性膝関節症", "運動療法", "exercise therapy", "筋力増強"},
	},
	{
		GID:  "gl-knee-oa-2023",
		CQ:   "CQ8",
		Q:    "変形性膝関節症に対する減量指導は症状を改善するか",
		Type: "treatment",
		Rec:  "肥満を伴う患者への減量指導を強く推奨する",
		Ev:   "rct",
		Page: "77",
		KW:   []string{"変形性膝関節症", "減量", "weight loss", "肥満"},
	},
	{
		GID:  "gl-hip-fracture-2021",
		CQ:   "CQ6",
		Q:    "大腿骨近位部骨折術後の早期荷重は推奨されるか",
		Type: "treatment",
		Rec:  "術後早期からの全荷重歩行訓練を弱く推奨する",
		Ev:   "observational",
		Page: "134",
		KW:   []string{"大腿骨近位部骨折", "早期荷重", "歩行訓練", "weight bearing"},
	},
	{
		GID:  "gl-heart-failure-2025",
		CQ:   "CQ9",
		Q:    "慢性心不全患者に運動療法を中心とした心臓リハビリテーションは推奨されるか",
		Type: "treatment",
		Rec:  "安定した慢性心不全患者への監視下運動療法を強く推奨する",
		Ev:   "sr_ma",
		Page: "203",
		KW:   []string{"心不全", "心臓リハビリテーション", "運動療法", "cardiac rehabilitation"},
	},
	{
		GID:  "gl-dysphagia-2018",
		CQ:   "CQ4",
		Q:    "嚥下障害患者に対する嚥下訓練は誤嚥性肺炎の発生を減らすか",
		Type: "prevention",
		Rec:  "系統的な嚥下訓練の実施を弱く推奨する",
		Ev:   "observational",
		Page: "52",
		KW:   []string{"嚥下障害", "嚥下訓練", "誤嚥性肺炎", "swallowing training"},
	},
	{
		GID:  "gl-sarcopenia-2017",
		CQ:   "CQ3",
		Q:    "サルコペニアの高齢者にレジスタンス運動は筋量・筋力を改善するか",
		Type: "treatment",
		Rec:  "レジスタンス運動を中心とした運動介入を強く推奨する",
		Ev:   "sr_ma",
		Page: "36",
		KW:   []string{"サルコペニア", "レジスタンス運動", "resistance training", "筋力増強訓練"},
	},
	{
		GID:  "gl-sarcopenia-2017",
		CQ:   "CQ7",
		Q:    "サルコペニア予防に蛋白質補給は有効か",
		Type: "prevention",
		Rec:  "運動と組み合わせた蛋白質補給を弱く推奨する",
		Ev:   "rct",
		Page: "58",
		KW:   []string{"サルコペニア", "栄養療法", "蛋白質", "protein supplementation"},
	},
	{
		GID:  "gl-copd-2022",
		CQ:   "CQ11",
		Q:    "COPD患者に呼吸リハビリテーションは運動耐容能を改善するか",
		Type: "treatment",
		Rec:  "安定期COPD患者への呼吸リハビリテーションを強く推奨する",
		Ev:   "sr_ma",
		Page: "167",
		KW:   []string{"COPD", "呼吸リハビリテーション", "pulmonary rehabilitation", "運動耐容能"},
	},
	{
		GID:  "gl-low-back-pain-2019",
		CQ:   "CQ5",
		Q:    "慢性腰痛に対して運動療法は推奨されるか",
		Type: "treatment",
		Rec:  "慢性腰痛患者への運動療法を強く推奨する",
		Ev:   "sr_ma",
		Page: "63",
		KW:   []string{"腰痛", "運動療法", "exercise therapy", "慢性疼痛"},
	},
	{
		GID:  "gl-parkinson-2018",
		CQ:   "CQ14",
		Q:    "パーキンソン病患者の歩行障害にリハビリテーションは有効か",
		Type: "treatment",
		Rec:  "外的キューを用いた歩行訓練を弱く推奨する",
		Ev:   "rct",
		Page: "148",
		KW:   []string{"パーキンソン病", "歩行訓練", "リハビリテーション", "cueing"},
	},
	{
		GID:  "gl-parkinson-2018",
		CQ:   "CQ18",
		Q:    "パーキンソン病の嚥下障害に嚥下訓練は推奨されるか",
		Type: "treatment",
		Rec:  "嚥下機能評価に基づく嚥下訓練を弱く推奨する",
		Ev:   "observational",
		Page: "171",
		KW:   []string{"パーキンソン病", "嚥下障害", "嚥下訓練"},
	},
}
